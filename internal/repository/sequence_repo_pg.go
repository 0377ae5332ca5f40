package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/Domenick1991/busboarding/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrRunNotFound = errors.New("boarding run not found")

type SequenceRepository interface {
	Save(ctx context.Context, run *domain.BoardingRun) error
	GetByID(ctx context.Context, id string) (*domain.BoardingRun, error)
	DeleteBefore(ctx context.Context, deadline time.Time) (int64, error)
}

type PGSequenceRepository struct {
	db *pgxpool.Pool
}

func NewSequenceRepository(db *pgxpool.Pool) *PGSequenceRepository {
	return &PGSequenceRepository{db: db}
}

// Migrate applies the embedded schema. Statements are idempotent.
func (r *PGSequenceRepository) Migrate(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		ddl, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := r.db.Exec(ctx, string(ddl)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

func (r *PGSequenceRepository) Save(ctx context.Context, run *domain.BoardingRun) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO boarding_runs (id, digest, total_bookings, created_at) VALUES ($1, $2, $3, $4)`,
		run.ID, run.Digest, run.TotalBookings, run.CreatedAt); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, d := range run.Details {
		batch.Queue(`INSERT INTO boarding_entries (run_id, sequence, booking_id, seats, furthest_seat_distance)
			VALUES ($1, $2, $3, $4, $5)`, run.ID, d.Sequence, d.BookingID, d.Seats, d.FurthestSeatDistance)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGSequenceRepository) GetByID(ctx context.Context, id string) (*domain.BoardingRun, error) {
	var run domain.BoardingRun
	err := r.db.QueryRow(ctx, `SELECT id::text, digest, total_bookings, created_at FROM boarding_runs WHERE id=$1`, id).
		Scan(&run.ID, &run.Digest, &run.TotalBookings, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT sequence, booking_id, seats, furthest_seat_distance FROM boarding_entries WHERE run_id=$1 ORDER BY sequence`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	run.Sequence = make([]domain.BoardingEntry, 0, run.TotalBookings)
	run.Details = make([]domain.BoardingDetail, 0, run.TotalBookings)
	for rows.Next() {
		var d domain.BoardingDetail
		if err := rows.Scan(&d.Sequence, &d.BookingID, &d.Seats, &d.FurthestSeatDistance); err != nil {
			return nil, err
		}
		run.Details = append(run.Details, d)
		run.Sequence = append(run.Sequence, domain.BoardingEntry{Sequence: d.Sequence, BookingID: d.BookingID})
	}
	return &run, rows.Err()
}

func (r *PGSequenceRepository) DeleteBefore(ctx context.Context, deadline time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM boarding_runs WHERE created_at < $1`, deadline)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ SequenceRepository = (*PGSequenceRepository)(nil)
