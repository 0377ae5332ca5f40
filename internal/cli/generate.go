package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/format"
	"github.com/Domenick1991/busboarding/internal/service/boarding"
	"github.com/spf13/cobra"
)

// OutputFunc builds the Output for a command once its flags are parsed.
type OutputFunc func(cmd *cobra.Command) *Output

// generateRecords runs the service with no storage, cache or events. Only
// warnings reach the terminal.
func generateRecords(ctx context.Context, errW io.Writer, records []domain.RawRecord) (*domain.BoardingRun, error) {
	logger := slog.New(slog.NewTextHandler(errW, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return boarding.NewBoardingService(nil, nil, nil, "", 0, boarding.WithLogger(logger)).Generate(ctx, records)
}

func NewGenerateCmd(outputFn OutputFunc) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Generate a boarding sequence from a bookings file",
		Long: "Reads one booking per line (ID, then a comma separated seat list) from a\n" +
			".txt, .csv or .tsv file. Files with other extensions are read as text.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecordsFile(args[0])
			if err != nil {
				return err
			}

			out := outputFn(cmd)
			run, err := generateRecords(cmd.Context(), cmd.ErrOrStderr(), records)
			if err != nil {
				return err
			}
			if err := out.Run(run); err != nil {
				return err
			}

			if outPath != "" {
				if err := writeSequenceFile(outPath, run.Sequence); err != nil {
					return err
				}
				out.Success(fmt.Sprintf("Sequence saved to %s", outPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Also write the sequence in export format to this file")

	return cmd
}

func readRecordsFile(path string) ([]domain.RawRecord, error) {
	kind, err := format.KindFromFilename(path)
	if err != nil {
		kind = format.KindText
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bookings: %w", err)
	}
	defer f.Close()

	return format.Decode(f, kind)
}

func writeSequenceFile(path string, seq []domain.BoardingEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := format.WriteSequence(f, seq); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
