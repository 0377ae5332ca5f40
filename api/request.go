package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Domenick1991/busboarding/internal/sequencer"
)

// flexibleID accepts a JSON number or string; forms and scripts send both.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*f = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("booking id must be a number or string: %w", err)
		}
		*f = flexibleID(n.String())
		return nil
	}
}

type manualEntry struct {
	BookingID flexibleID `json:"booking_id"`
	Seats     string     `json:"seats"`
}

type generateRequest struct {
	ManualData *[]manualEntry `json:"manual_data"`
}

type exportRequest struct {
	Sequence [][2]flexibleID `json:"sequence"`
}

// jsonID renders integer ids as JSON numbers so clients get back what they sent.
func jsonID(id string) any {
	if sequencer.IsIntegerID(id) {
		return json.Number(id)
	}
	return id
}
