package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"autorent-backend/internal/domain"

	"github.com/lib/pq"
)

// classify maps raw store errors onto the domain taxonomy at the transaction
// boundary. Errors that already belong to the taxonomy pass through
// untouched, so services can return their own Conflict/NotFound verdicts
// from inside a transaction.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError("%s: row not found", op)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return domain.TransientError(op, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return domain.ConflictError("%s: %s", op, pqErr.Detail)
		case "23503": // foreign_key_violation
			return domain.InvalidOperationError("%s: referenced row does not exist", op)
		case "23514": // check_violation
			return domain.ValidationError("%s: %s", op, pqErr.Message)
		case "55P03", "40P01", "40001", "57014":
			// lock_not_available, deadlock_detected, serialization_failure,
			// query_canceled (statement timeout)
			return domain.TransientError(op, err)
		}
		if pqErr.Code.Class() == "08" { // connection exceptions
			return domain.TransientError(op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
