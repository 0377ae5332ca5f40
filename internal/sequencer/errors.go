package sequencer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingID      = errors.New("booking id is missing")
	ErrDuplicateID    = errors.New("duplicate booking id")
	ErrEmptySeats     = errors.New("seat list is empty")
	ErrInvalidSeat    = errors.New("seat has no numeric component")
	ErrNoSeats        = errors.New("booking has no seats")
	ErrUnknownBooking = errors.New("sequence references unknown booking")
)

// ValidationError reports which input record was rejected and why.
type ValidationError struct {
	Position  int    // 1-based record position, 0 if not tied to a record
	Line      int    // source line, 0 if unknown
	BookingID string // may be empty when the id itself is the problem
	Detail    string
	Err       error
}

func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	where := ""
	switch {
	case e.Position > 0 && e.Line > 0:
		where = fmt.Sprintf("record %d (line %d)", e.Position, e.Line)
	case e.Position > 0:
		where = fmt.Sprintf("record %d", e.Position)
	}
	if e.BookingID != "" {
		if where != "" {
			where += ", "
		}
		where += "booking " + e.BookingID
	}
	if where == "" {
		return msg
	}
	return where + ": " + msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
