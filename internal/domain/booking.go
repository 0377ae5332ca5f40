package domain

import (
	"strconv"
	"time"
)

// Seat is a single seat assignment. Distance grows towards the back of the bus.
// Token is the code as the passenger wrote it, e.g. "A01".
type Seat struct {
	Token    string
	Label    string
	Distance int
}

// Code is the seat as entered; seats built without a token render as label and distance.
func (s Seat) Code() string {
	if s.Token != "" {
		return s.Token
	}
	return s.Label + strconv.Itoa(s.Distance)
}

type Booking struct {
	ID    string
	Seats []Seat
}

func (b Booking) SeatCodes() []string {
	codes := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		codes = append(codes, s.Code())
	}
	return codes
}

// RawRecord is an unvalidated booking as handed over by a reader.
// Line is the source line, zero when unknown.
type RawRecord struct {
	ID    string
	Seats string
	Line  int
}

type BoardingEntry struct {
	Sequence  int    `json:"sequence"`
	BookingID string `json:"booking_id"`
}

type BoardingDetail struct {
	Sequence             int      `json:"sequence"`
	BookingID            string   `json:"booking_id"`
	Seats                []string `json:"seats"`
	FurthestSeatDistance int      `json:"furthest_seat_distance"`
}

type BoardingRun struct {
	ID            string           `json:"id"`
	Digest        string           `json:"digest"`
	TotalBookings int              `json:"total_bookings"`
	Sequence      []BoardingEntry  `json:"sequence"`
	Details       []BoardingDetail `json:"details"`
	CreatedAt     time.Time        `json:"created_at"`
}
