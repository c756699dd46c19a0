package postgres

import (
	"context"
	"errors"
	"testing"

	"autorent-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectStatusByName = `SELECT id FROM statuses WHERE name = \$1`
	insertStatus       = `INSERT INTO statuses \(name\) VALUES \(\$1\) ON CONFLICT \(name\) DO NOTHING RETURNING id`
)

func TestStatusResolveExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(selectStatusByName).
		WithArgs(domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	repo := NewStatusRepository(db)
	id, created, err := repo.Resolve(context.Background(), domain.StatusPending)

	require.NoError(t, err)
	assert.Equal(t, int32(4), id)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusResolveInsertsMissingName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(selectStatusByName).
		WithArgs("inspection").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(insertStatus).
		WithArgs("inspection").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	repo := NewStatusRepository(db)
	id, created, err := repo.Resolve(context.Background(), "inspection")

	require.NoError(t, err)
	assert.Equal(t, int32(8), id)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusResolveLostInsertRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The insert returns no row when a concurrent resolver won the race;
	// the follow-up select picks up the winner's id.
	mock.ExpectQuery(selectStatusByName).
		WithArgs(domain.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(insertStatus).
		WithArgs(domain.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(selectStatusByName).
		WithArgs(domain.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	repo := NewStatusRepository(db)
	id, created, err := repo.Resolve(context.Background(), domain.StatusActive)

	require.NoError(t, err)
	assert.Equal(t, int32(5), id)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusResolveEmptyName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewStatusRepository(db)
	_, _, err = repo.Resolve(context.Background(), "")

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusGetByNameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM statuses WHERE name = \$1`).
		WithArgs("bogus").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	repo := NewStatusRepository(db)
	_, err = repo.GetByName(context.Background(), "bogus")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
