package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/busboarding/internal/domain"
)

const SequenceHeader = "Seq\tBooking_ID"

// SampleBookings is a small tab separated input used by the CLI and the docs.
const SampleBookings = `Booking_ID	Seats
101	A1,B1
120	A20,C2
105	A15,B15
130	C5,D5
115	A10,B10,C10
140	D18,C18
`

// WriteSequence writes the tab separated export format.
func WriteSequence(w io.Writer, seq []domain.BoardingEntry) error {
	if _, err := fmt.Fprintln(w, SequenceHeader); err != nil {
		return err
	}
	for _, e := range seq {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", e.Sequence, e.BookingID); err != nil {
			return err
		}
	}
	return nil
}

func WriteDetails(w io.Writer, details []domain.BoardingDetail) error {
	for _, d := range details {
		_, err := fmt.Fprintf(w, "Seq %d: Booking %s (Seats: %s, Furthest: Row %d)\n",
			d.Sequence, d.BookingID, strings.Join(d.Seats, ", "), d.FurthestSeatDistance)
		if err != nil {
			return err
		}
	}
	return nil
}
