package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"bookings.txt", KindText},
		{"BOOKINGS.CSV", KindCSV},
		{"dir/in.tsv", KindTSV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := KindFromFilename(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}

	_, err := KindFromFilename("bookings.xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
	_, err = KindFromFilename("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		input string
		want  []domain.RawRecord
	}{
		{
			name:  "tab separated with header",
			kind:  KindText,
			input: "Booking_ID\tSeats\n101\tA1,B1\n120\tA20,C2\n",
			want: []domain.RawRecord{
				{ID: "101", Seats: "A1,B1", Line: 2},
				{ID: "120", Seats: "A20,C2", Line: 3},
			},
		},
		{
			name:  "no header",
			kind:  KindTSV,
			input: "101\tA1,B1\n120\tA20,C2",
			want: []domain.RawRecord{
				{ID: "101", Seats: "A1,B1", Line: 1},
				{ID: "120", Seats: "A20,C2", Line: 2},
			},
		},
		{
			name:  "whitespace columns, blank lines and comments",
			kind:  KindText,
			input: "# morning run\nBooking_ID    Seats\n\n101   A1, B1\n120 A20,C2\n",
			want: []domain.RawRecord{
				{ID: "101", Seats: "A1,B1", Line: 4},
				{ID: "120", Seats: "A20,C2", Line: 5},
			},
		},
		{
			name:  "csv quoted and unquoted seat lists",
			kind:  KindCSV,
			input: "booking_id,seats\n101,\"A1,B1\"\n120,A20,C2\n",
			want: []domain.RawRecord{
				{ID: "101", Seats: "A1,B1", Line: 2},
				{ID: "120", Seats: "A20,C2", Line: 3},
			},
		},
		{
			name:  "csv with byte order mark before header",
			kind:  KindCSV,
			input: "\ufeffBooking_ID,Seats\n101,A1\n",
			want:  []domain.RawRecord{{ID: "101", Seats: "A1", Line: 2}},
		},
		{
			name:  "byte order mark without header",
			kind:  KindTSV,
			input: "\ufeff101\tA1\n",
			want:  []domain.RawRecord{{ID: "101", Seats: "A1", Line: 1}},
		},
		{
			name:  "seats separated by spaces only",
			kind:  KindText,
			input: "101 A1 B1\n102 C3 ,D4\n103 E5,,F6\n",
			want: []domain.RawRecord{
				{ID: "101", Seats: "A1,B1", Line: 1},
				{ID: "102", Seats: "C3,D4", Line: 2},
				{ID: "103", Seats: "E5,,F6", Line: 3},
			},
		},
		{
			name:  "missing seats passed through",
			kind:  KindText,
			input: "101\n",
			want:  []domain.RawRecord{{ID: "101", Seats: "", Line: 1}},
		},
		{
			name:  "header only after data is a record",
			kind:  KindTSV,
			input: "101\tA1\nBooking_ID\tSeats\n",
			want: []domain.RawRecord{
				{ID: "101", Seats: "A1", Line: 1},
				{ID: "Booking_ID", Seats: "Seats", Line: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_BadCSV(t *testing.T) {
	_, err := Decode(strings.NewReader("101,A\"1\n"), KindCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestWriteSequence(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSequence(&buf, []domain.BoardingEntry{
		{Sequence: 1, BookingID: "120"},
		{Sequence: 2, BookingID: "101"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Seq\tBooking_ID\n1\t120\n2\t101\n", buf.String())
}

func TestWriteSequence_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, nil))
	assert.Equal(t, "Seq\tBooking_ID\n", buf.String())
}

func TestWriteDetails(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDetails(&buf, []domain.BoardingDetail{
		{Sequence: 1, BookingID: "120", Seats: []string{"A20", "C2"}, FurthestSeatDistance: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, "Seq 1: Booking 120 (Seats: A20, C2, Furthest: Row 20)\n", buf.String())
}

func TestSampleBookingsDecode(t *testing.T) {
	recs, err := Decode(strings.NewReader(SampleBookings), KindText)
	require.NoError(t, err)
	assert.Len(t, recs, 6)
	assert.Equal(t, "140", recs[5].ID)
}
