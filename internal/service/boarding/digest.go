package boarding

import (
	"encoding/hex"
	"io"
	"slices"
	"strings"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/sequencer"
	"github.com/zeebo/blake3"
)

// Digest identifies a booking set independent of record and seat order.
// Equal sets always sequence identically, so the digest is a safe cache key.
func Digest(bookings []domain.Booking) string {
	sorted := slices.Clone(bookings)
	slices.SortFunc(sorted, func(a, b domain.Booking) int {
		return sequencer.CompareIDs(a.ID, b.ID)
	})

	h := blake3.New()
	for _, b := range sorted {
		codes := b.SeatCodes()
		slices.Sort(codes)
		io.WriteString(h, b.ID)
		io.WriteString(h, "\x1f")
		io.WriteString(h, strings.Join(codes, ","))
		io.WriteString(h, "\x1e")
	}
	return hex.EncodeToString(h.Sum(nil))
}
