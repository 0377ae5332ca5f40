package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/Domenick1991/busboarding/internal/format"
	"github.com/Domenick1991/busboarding/internal/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = "Seq\tBooking_ID\n1\t120\n2\t140\n3\t105\n4\t115\n5\t130\n6\t101\n"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd("test")
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.txt")
	require.NoError(t, os.WriteFile(path, []byte(format.SampleBookings), 0o644))
	return path
}

func TestGenerateCmd(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sequence.txt")

	stdout, stderr, err := execute(t, "", "generate", writeSample(t), "-o", outPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "SEQ  BOOKING_ID")
	assert.Contains(t, stdout, "Seq 1: Booking 120 (Seats: A20, C2, Furthest: Row 20)")
	assert.Contains(t, stdout, "Seq 6: Booking 101 (Seats: A1, B1, Furthest: Row 1)")
	assert.Contains(t, stderr, "Sequence saved to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, sampleExport, string(data))
}

func TestGenerateCmd_JSON(t *testing.T) {
	stdout, _, err := execute(t, "", "--json", "generate", writeSample(t))
	require.NoError(t, err)

	var run domain.BoardingRun
	require.NoError(t, json.Unmarshal([]byte(stdout), &run))
	assert.Equal(t, 6, run.TotalBookings)
	require.Len(t, run.Sequence, 6)
	assert.Equal(t, "120", run.Sequence[0].BookingID)
	assert.Equal(t, "101", run.Sequence[5].BookingID)
}

func TestGenerateCmd_AnyExtensionReadsAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.dat")
	require.NoError(t, os.WriteFile(path, []byte("7 A3\n8 B9\n"), 0o644))

	stdout, _, err := execute(t, "", "generate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Seq 1: Booking 8 (Seats: B9, Furthest: Row 9)")
}

func TestGenerateCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	dup := filepath.Join(dir, "dup.txt")
	require.NoError(t, os.WriteFile(dup, []byte("101\tA1\n101\tB2\n"), 0o644))

	_, _, err := execute(t, "", "generate", dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, sequencer.ErrDuplicateID)

	_, _, err = execute(t, "", "generate", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	_, _, err = execute(t, "", "generate")
	assert.Error(t, err)
}

func TestInteractiveCmd(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.txt")
	input := strings.Join([]string{
		"101", "A1,B1",
		"120", "X", "A20,C2",
		"101",
		"",
		outPath,
	}, "\n") + "\n"

	stdout, stderr, err := execute(t, input, "interactive")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Seq 1: Booking 120 (Seats: A20, C2, Furthest: Row 20)")
	assert.Contains(t, stdout, "Seq 2: Booking 101 (Seats: A1, B1, Furthest: Row 1)")
	assert.Contains(t, stderr, "Booking 101 already entered")
	assert.Contains(t, stderr, "seat has no numeric component")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Seq\tBooking_ID\n1\t120\n2\t101\n", string(data))
}

func TestInteractiveCmd_NoBookings(t *testing.T) {
	_, _, err := execute(t, "\n", "interactive")
	assert.ErrorIs(t, err, errNoBookings)

	_, _, err = execute(t, "", "interactive")
	assert.ErrorIs(t, err, errNoBookings)
}

func TestSampleCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")

	_, stderr, err := execute(t, "", "sample", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Sample bookings written to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, format.SampleBookings, string(data))

	_, _, err = execute(t, "", "sample", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "", "sample", "--force", path)
	assert.NoError(t, err)
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test")
}

func TestOutputTable(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(false, &buf, &buf)
	require.NoError(t, out.Table([]string{"SEQ", "BOOKING_ID"}, [][]string{{"1", "120"}, {"10", "7"}}))

	assert.Equal(t, "SEQ  BOOKING_ID\n---  ----------\n1    120\n10   7\n", buf.String())
}
