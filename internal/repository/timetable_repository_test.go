package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/limaJavier/classgrid/pkg/errors"
)

func newTimetableRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTimetableRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS timetables")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositorySave(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)
	record := sampleRecord("tt-1")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetables")+".*"+regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs("tt-1", "random", int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), record.CreatedAt, record.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryGet(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)
	record := sampleRecord("tt-1")

	input, err := json.Marshal(record.Input)
	require.NoError(t, err)
	timetable, err := json.Marshal(record.Timetable)
	require.NoError(t, err)
	report, err := json.Marshal(record.Report)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "strategy", "seed", "input", "timetable", "report", "created_at", "updated_at"}).
		AddRow("tt-1", "random", int64(3), input, timetable, report, record.CreatedAt, record.UpdatedAt)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, strategy, seed, input, timetable, report, created_at, updated_at FROM timetables WHERE id = $1")).
		WithArgs("tt-1").
		WillReturnRows(rows)

	stored, err := repo.Get(context.Background(), "tt-1")

	require.NoError(t, err)
	assert.Equal(t, record.Input, stored.Input)
	assert.Equal(t, record.Report, stored.Report)
	for day := 0; day < 6; day++ {
		for period := 0; period < 5; period++ {
			assert.Equal(t, record.Timetable.Cell(0, day, period), stored.Timetable.Cell(0, day, period))
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryGetNotFound(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetables WHERE id = $1")).
		WithArgs("tt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetables WHERE id = $1")).
		WithArgs("tt-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "tt-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "tt-2"), appErrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
