package format

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Domenick1991/busboarding/internal/domain"
)

type Kind string

const (
	KindText Kind = "txt"
	KindCSV  Kind = "csv"
	KindTSV  Kind = "tsv"
)

var ErrUnsupportedFile = errors.New("unsupported file type, expected .txt, .csv or .tsv")

const headerID = "booking_id"

// utf8BOM leads files saved by spreadsheet tools.
const utf8BOM = "\ufeff"

func KindFromFilename(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "txt":
		return KindText, nil
	case "csv":
		return KindCSV, nil
	case "tsv":
		return KindTSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFile, name)
	}
}

// Decode reads one booking per line. Blank lines, '#' comments and a leading
// Booking_ID header are skipped. Records are returned unvalidated.
func Decode(r io.Reader, kind Kind) ([]domain.RawRecord, error) {
	var (
		records []domain.RawRecord
		sawData bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if line == 1 {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		id, seats, err := splitLine(text, kind)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !sawData && strings.EqualFold(id, headerID) {
			sawData = true
			continue
		}
		sawData = true
		records = append(records, domain.RawRecord{ID: id, Seats: seats, Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	return records, nil
}

func splitLine(text string, kind Kind) (string, string, error) {
	if kind == KindCSV {
		reader := csv.NewReader(strings.NewReader(text))
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		fields, err := reader.Read()
		if err != nil {
			return "", "", fmt.Errorf("parse csv: %w", err)
		}
		if len(fields) == 1 {
			return strings.TrimSpace(fields[0]), "", nil
		}
		return strings.TrimSpace(fields[0]), strings.Join(fields[1:], ","), nil
	}

	if id, seats, ok := strings.Cut(text, "\t"); ok {
		return strings.TrimSpace(id), strings.TrimSpace(seats), nil
	}

	fields := strings.Fields(text)
	if len(fields) == 1 {
		return fields[0], "", nil
	}
	return fields[0], joinSeatFields(fields[1:]), nil
}

// joinSeatFields rebuilds a seat list split on whitespace. "A1, B1" and
// "A1 B1" both give "A1,B1"; empty tokens such as "A1,,B1" are kept for
// validation to reject.
func joinSeatFields(fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 && !strings.HasSuffix(fields[i-1], ",") && !strings.HasPrefix(f, ",") {
			b.WriteByte(',')
		}
		b.WriteString(f)
	}
	return b.String()
}
