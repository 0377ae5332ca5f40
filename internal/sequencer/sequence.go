package sequencer

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/Domenick1991/busboarding/internal/domain"
)

// Priority is the distance of the booking's furthest seat.
func Priority(b domain.Booking) (int, error) {
	if len(b.Seats) == 0 {
		return 0, &ValidationError{BookingID: b.ID, Err: ErrNoSeats}
	}
	furthest := b.Seats[0].Distance
	for _, s := range b.Seats[1:] {
		furthest = max(furthest, s.Distance)
	}
	return furthest, nil
}

// CompareIDs orders integer ids numerically ahead of any other id;
// non-integer ids compare as strings.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

type ranked struct {
	id       string
	priority int
}

// Generate returns the boarding order: furthest seat first, lower id first on
// equal distance. No bookings yields an empty sequence, not an error.
func Generate(bookings []domain.Booking) ([]domain.BoardingEntry, error) {
	ranks := make([]ranked, 0, len(bookings))
	for _, b := range bookings {
		p, err := Priority(b)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, ranked{id: b.ID, priority: p})
	}

	slices.SortStableFunc(ranks, func(a, b ranked) int {
		if c := cmp.Compare(b.priority, a.priority); c != 0 {
			return c
		}
		return CompareIDs(a.id, b.id)
	})

	seq := make([]domain.BoardingEntry, len(ranks))
	for i, r := range ranks {
		seq[i] = domain.BoardingEntry{Sequence: i + 1, BookingID: r.id}
	}
	return seq, nil
}

// Details joins every entry with its booking's seats and priority.
func Details(seq []domain.BoardingEntry, bookings []domain.Booking) ([]domain.BoardingDetail, error) {
	byID := make(map[string]domain.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
	}

	details := make([]domain.BoardingDetail, 0, len(seq))
	for _, e := range seq {
		b, ok := byID[e.BookingID]
		if !ok {
			return nil, &ValidationError{Position: e.Sequence, BookingID: e.BookingID, Err: ErrUnknownBooking}
		}
		p, err := Priority(b)
		if err != nil {
			return nil, err
		}
		details = append(details, domain.BoardingDetail{
			Sequence:             e.Sequence,
			BookingID:            e.BookingID,
			Seats:                b.SeatCodes(),
			FurthestSeatDistance: p,
		})
	}
	return details, nil
}

// Run parses records and returns both the sequence and its detail view.
func Run(records []domain.RawRecord) ([]domain.Booking, []domain.BoardingEntry, []domain.BoardingDetail, error) {
	bookings, err := Parse(records)
	if err != nil {
		return nil, nil, nil, err
	}
	seq, err := Generate(bookings)
	if err != nil {
		return nil, nil, nil, err
	}
	details, err := Details(seq, bookings)
	if err != nil {
		return nil, nil, nil, err
	}
	return bookings, seq, details, nil
}
