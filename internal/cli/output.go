package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/format"
)

// Output renders results to w and status messages to errW.
type Output struct {
	jsonMode bool
	w        io.Writer
	errW     io.Writer
}

func NewOutput(jsonMode bool, w, errW io.Writer) *Output {
	return &Output{jsonMode: jsonMode, w: w, errW: errW}
}

// Run prints a generated run as a table plus the per-booking analysis, or as JSON.
func (o *Output) Run(run *domain.BoardingRun) error {
	if o.jsonMode {
		return o.JSON(run)
	}

	rows := make([][]string, len(run.Sequence))
	for i, e := range run.Sequence {
		rows[i] = []string{strconv.Itoa(e.Sequence), e.BookingID}
	}
	if err := o.Table([]string{"SEQ", "BOOKING_ID"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(o.w, "\nDetailed analysis (%d bookings):\n", run.TotalBookings)
	return format.WriteDetails(o.w, run.Details)
}

func (o *Output) Table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func (o *Output) JSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// Prompt writes without a newline; prompts go to errW so piped stdout stays clean.
func (o *Output) Prompt(msg string) {
	fmt.Fprint(o.errW, msg)
}
