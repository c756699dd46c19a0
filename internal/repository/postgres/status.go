package postgres

import (
	"context"
	"database/sql"
	"errors"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type statusRepository struct {
	q DBTX
}

func NewStatusRepository(q DBTX) repository.StatusRepository {
	return &statusRepository{q: q}
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	st := &domain.Status{}
	err := r.q.QueryRowContext(ctx, `SELECT id, name FROM statuses WHERE name = $1`, name).Scan(&st.ID, &st.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("status %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Resolve implements insert-or-get over the statuses table. ON CONFLICT DO
// NOTHING keeps a concurrent first-use insert from failing the caller's
// transaction; when the insert returns no row the name already exists and
// the follow-up select finds the winner's id.
func (r *statusRepository) Resolve(ctx context.Context, name string) (int32, bool, error) {
	if name == "" {
		return 0, false, domain.ValidationError("status name must not be empty")
	}

	var id int32
	err := r.q.QueryRowContext(ctx, `SELECT id FROM statuses WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	err = r.q.QueryRowContext(ctx,
		`INSERT INTO statuses (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`, name,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	// Lost the insert race: another resolver created the row first.
	err = r.q.QueryRowContext(ctx, `SELECT id FROM statuses WHERE name = $1`, name).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}
