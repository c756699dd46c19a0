package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"autorent-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same repository code
// serves plain reads and transactional scopes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store bundles the repositories bound to the shared connection pool and
// implements repository.TxRunner for multi-statement operations.
type Store struct {
	db *sql.DB

	// Bounded waits inside transactions. Zero disables the SET LOCAL calls.
	lockTimeout time.Duration
	stmtTimeout time.Duration

	repository.VehicleRepository
	repository.OrderRepository
	repository.StatusRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		VehicleRepository: NewVehicleRepository(db),
		OrderRepository:   NewOrderRepository(db),
		StatusRepository:  NewStatusRepository(db),
	}
}

// WithTimeouts sets the per-transaction lock and statement timeouts.
func (s *Store) WithTimeouts(lock, stmt time.Duration) *Store {
	s.lockTimeout = lock
	s.stmtTimeout = stmt
	return s
}

type txRepos struct {
	vehicles repository.VehicleRepository
	orders   repository.OrderRepository
	statuses repository.StatusRepository
}

func (t *txRepos) Vehicles() repository.VehicleRepository { return t.vehicles }
func (t *txRepos) Orders() repository.OrderRepository     { return t.orders }
func (t *txRepos) Statuses() repository.StatusRepository  { return t.statuses }

// InTx runs fn inside one transaction at READ COMMITTED. The deferred
// rollback guarantees release on every exit path, including panics; commit
// makes it a no-op. Errors crossing the boundary are classified into the
// domain taxonomy.
func (s *Store) InTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return classify("begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.applyTimeouts(ctx, tx); err != nil {
		return classify("set transaction timeouts", err)
	}

	scope := &txRepos{
		vehicles: NewVehicleRepository(tx),
		orders:   NewOrderRepository(tx),
		statuses: NewStatusRepository(tx),
	}
	if err := fn(scope); err != nil {
		return classify("transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return classify("commit transaction", err)
	}
	return nil
}

func (s *Store) applyTimeouts(ctx context.Context, tx *sql.Tx) error {
	// SET LOCAL scopes the setting to this transaction only. The values are
	// formatted, not bound: Postgres does not accept placeholders here.
	if s.lockTimeout > 0 {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())); err != nil {
			return err
		}
	}
	if s.stmtTimeout > 0 {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", s.stmtTimeout.Milliseconds())); err != nil {
			return err
		}
	}
	return nil
}
