package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/limaJavier/classgrid/internal/models"
	"github.com/limaJavier/classgrid/pkg/model"
)

const timetableSchema = `
CREATE TABLE IF NOT EXISTS timetables (
	id TEXT PRIMARY KEY,
	strategy TEXT NOT NULL,
	seed BIGINT NOT NULL DEFAULT 0,
	input JSONB NOT NULL,
	timetable JSONB NOT NULL,
	report JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type timetableRow struct {
	ID        string         `db:"id"`
	Strategy  string         `db:"strategy"`
	Seed      int64          `db:"seed"`
	Input     types.JSONText `db:"input"`
	Timetable types.JSONText `db:"timetable"`
	Report    types.JSONText `db:"report"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// TimetableRepository persists timetables in PostgreSQL, one JSONB document per column.
type TimetableRepository struct {
	db *sqlx.DB
}

func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// EnsureSchema creates the timetables table when it is missing.
func (r *TimetableRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, timetableSchema); err != nil {
		return fmt.Errorf("create timetables table: %w", err)
	}
	return nil
}

// Save inserts the record or replaces the stored one with the same id.
func (r *TimetableRepository) Save(ctx context.Context, record *models.TimetableRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO timetables (id, strategy, seed, input, timetable, report, created_at, updated_at)
VALUES (:id, :strategy, :seed, :input, :timetable, :report, :created_at, :updated_at)
ON CONFLICT (id) DO UPDATE SET timetable = EXCLUDED.timetable, report = EXCLUDED.report, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert timetable: %w", err)
	}
	return nil
}

func (r *TimetableRepository) Get(ctx context.Context, id string) (*models.TimetableRecord, error) {
	const query = `SELECT id, strategy, seed, input, timetable, report, created_at, updated_at FROM timetables WHERE id = $1`
	var row timetableRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	return fromRow(row)
}

func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM timetables WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("timetable rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(id)
	}
	return nil
}

func toRow(record *models.TimetableRecord) (timetableRow, error) {
	input, err := json.Marshal(record.Input)
	if err != nil {
		return timetableRow{}, fmt.Errorf("marshal input: %w", err)
	}
	timetable, err := json.Marshal(record.Timetable)
	if err != nil {
		return timetableRow{}, fmt.Errorf("marshal timetable: %w", err)
	}
	report, err := json.Marshal(record.Report)
	if err != nil {
		return timetableRow{}, fmt.Errorf("marshal report: %w", err)
	}
	return timetableRow{
		ID:        record.ID,
		Strategy:  string(record.Strategy),
		Seed:      record.Seed,
		Input:     types.JSONText(input),
		Timetable: types.JSONText(timetable),
		Report:    types.JSONText(report),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func fromRow(row timetableRow) (*models.TimetableRecord, error) {
	record := &models.TimetableRecord{
		ID:        row.ID,
		Strategy:  model.Strategy(row.Strategy),
		Seed:      row.Seed,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := row.Input.Unmarshal(&record.Input); err != nil {
		return nil, fmt.Errorf("unmarshal input of %s: %w", row.ID, err)
	}
	if err := row.Timetable.Unmarshal(&record.Timetable); err != nil {
		return nil, fmt.Errorf("unmarshal timetable of %s: %w", row.ID, err)
	}
	if err := row.Report.Unmarshal(&record.Report); err != nil {
		return nil, fmt.Errorf("unmarshal report of %s: %w", row.ID, err)
	}
	return record, nil
}
