package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/sequencer"
	"github.com/spf13/cobra"
)

var errNoBookings = errors.New("no bookings entered")

func NewInteractiveCmd(outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Enter bookings at the prompt and sequence them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFn(cmd)
			in := bufio.NewScanner(cmd.InOrStdin())

			records, err := promptRecords(in, out)
			if err != nil {
				return err
			}

			run, err := generateRecords(cmd.Context(), cmd.ErrOrStderr(), records)
			if err != nil {
				return err
			}
			if err := out.Run(run); err != nil {
				return err
			}

			out.Prompt("Save sequence to file (empty to skip): ")
			path, _ := readLine(in)
			if path == "" {
				return nil
			}
			if err := writeSequenceFile(path, run.Sequence); err != nil {
				return err
			}
			out.Success(fmt.Sprintf("Sequence saved to %s", path))
			return nil
		},
	}
}

// promptRecords reads id/seat pairs until an empty id or end of input.
// Bad seats and repeated ids are reported and asked for again.
func promptRecords(in *bufio.Scanner, out *Output) ([]domain.RawRecord, error) {
	var records []domain.RawRecord
	seen := make(map[string]bool)

	for {
		out.Prompt(fmt.Sprintf("Booking %d ID (empty to finish): ", len(records)+1))
		id, ok := readLine(in)
		if !ok || id == "" {
			break
		}
		canonical := sequencer.CanonicalID(id)
		if seen[canonical] {
			out.Success(fmt.Sprintf("Booking %s already entered", canonical))
			continue
		}

		var seats string
		for {
			out.Prompt("Seats (e.g. A1,B1): ")
			seats, ok = readLine(in)
			if !ok {
				return nil, io.ErrUnexpectedEOF
			}
			if _, err := sequencer.ParseSeats(seats); err != nil {
				out.Success(err.Error())
				continue
			}
			break
		}

		seen[canonical] = true
		records = append(records, domain.RawRecord{ID: id, Seats: seats, Line: len(records) + 1})
	}

	if err := in.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errNoBookings
	}
	return records, nil
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
