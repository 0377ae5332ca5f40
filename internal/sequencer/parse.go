package sequencer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Domenick1991/busboarding/internal/domain"
)

var seatPattern = regexp.MustCompile(`^([A-Za-z]*)([0-9]+)$`)

// ParseSeat turns a seat code such as "A20" into a Seat. The letters are kept
// as the label; the digits are the distance from the front door.
func ParseSeat(token string) (domain.Seat, error) {
	token = strings.TrimSpace(token)
	m := seatPattern.FindStringSubmatch(token)
	if m == nil {
		return domain.Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, token)
	}
	distance, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.Seat{}, fmt.Errorf("%w: %q out of range", ErrInvalidSeat, token)
	}
	return domain.Seat{Token: token, Label: m[1], Distance: distance}, nil
}

// ParseSeats splits a comma separated seat list. Repeated seat codes collapse;
// "A01" and "A1" are different codes.
func ParseSeats(list string) ([]domain.Seat, error) {
	if strings.TrimSpace(list) == "" {
		return nil, ErrEmptySeats
	}

	tokens := strings.Split(list, ",")
	seats := make([]domain.Seat, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seat, err := ParseSeat(tok)
		if err != nil {
			return nil, err
		}
		code := seat.Code()
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		seats = append(seats, seat)
	}
	return seats, nil
}

// CanonicalID trims the id and normalises integer ids, so "0101" and "101"
// name the same booking.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id
}

// IsIntegerID reports whether id is an integer in canonical form.
func IsIntegerID(id string) bool {
	_, err := strconv.ParseInt(id, 10, 64)
	return err == nil && CanonicalID(id) == id
}

// Parse validates raw records and builds bookings in input order.
// The first offending record aborts parsing; there is no partial result.
func Parse(records []domain.RawRecord) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		pos := i + 1
		id := CanonicalID(rec.ID)
		if id == "" {
			return nil, &ValidationError{Position: pos, Line: rec.Line, Err: ErrMissingID}
		}
		if first, dup := seen[id]; dup {
			return nil, &ValidationError{
				Position:  pos,
				Line:      rec.Line,
				BookingID: id,
				Detail:    fmt.Sprintf("first seen in record %d", first),
				Err:       ErrDuplicateID,
			}
		}
		seen[id] = pos

		seats, err := ParseSeats(rec.Seats)
		if err != nil {
			vErr := &ValidationError{Position: pos, Line: rec.Line, BookingID: id, Err: ErrEmptySeats}
			if !errors.Is(err, ErrEmptySeats) {
				vErr.Err = ErrInvalidSeat
				vErr.Detail = strings.TrimPrefix(err.Error(), ErrInvalidSeat.Error()+": ")
			}
			return nil, vErr
		}

		bookings = append(bookings, domain.Booking{ID: id, Seats: seats})
	}
	return bookings, nil
}
