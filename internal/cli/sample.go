package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Domenick1991/busboarding/internal/format"
	"github.com/spf13/cobra"
)

const defaultSamplePath = "sample_bookings.txt"

func NewSampleCmd(outputFn OutputFunc) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample [FILE]",
		Short: "Write a sample bookings file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSamplePath
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := os.WriteFile(path, []byte(format.SampleBookings), 0o644); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}

			outputFn(cmd).Success(fmt.Sprintf("Sample bookings written to %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
