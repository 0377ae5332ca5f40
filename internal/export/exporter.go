package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Domenick1991/busboarding/internal/format"
	"github.com/Domenick1991/busboarding/internal/kafka"
)

// FileExporter writes each generated sequence to <dir>/boarding_<run id>.txt.
type FileExporter struct {
	dir    string
	logger *slog.Logger
}

func NewFileExporter(dir string, logger *slog.Logger) *FileExporter {
	return &FileExporter{dir: dir, logger: logger}
}

func (e *FileExporter) Export(ctx context.Context, event kafka.SequenceEvent) (string, error) {
	if event.RunID == "" {
		return "", fmt.Errorf("sequence event without run id")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(e.dir, "boarding_"+filepath.Base(event.RunID)+".txt")
	tmp, err := os.CreateTemp(e.dir, ".boarding-*")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := format.WriteSequence(tmp, event.Sequence); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("publish export: %w", err)
	}

	e.logger.Info("exported boarding sequence", "run_id", event.RunID, "bookings", event.TotalBookings, "path", path)
	return path, nil
}
