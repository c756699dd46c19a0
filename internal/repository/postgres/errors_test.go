package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"autorent-backend/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPassesDomainErrorsThrough(t *testing.T) {
	err := domain.ConflictError("vehicle unavailable for the selected dates")
	assert.Equal(t, err, classify("transaction", err))
}

func TestClassifyPostgresCodes(t *testing.T) {
	cases := []struct {
		name string
		code pq.ErrorCode
		want error
	}{
		{"UniqueViolation", "23505", domain.ErrConflict},
		{"ForeignKeyViolation", "23503", domain.ErrInvalidOperation},
		{"CheckViolation", "23514", domain.ErrValidation},
		{"LockNotAvailable", "55P03", domain.ErrTransient},
		{"DeadlockDetected", "40P01", domain.ErrTransient},
		{"SerializationFailure", "40001", domain.ErrTransient},
		{"StatementTimeout", "57014", domain.ErrTransient},
		{"ConnectionFailure", "08006", domain.ErrTransient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify("op", &pq.Error{Code: tc.code})
			assert.True(t, errors.Is(got, tc.want), "code %s classified as %v", tc.code, got)
		})
	}
}

func TestClassifyConnectionErrors(t *testing.T) {
	assert.True(t, errors.Is(classify("op", driver.ErrBadConn), domain.ErrTransient))
	assert.True(t, errors.Is(classify("op", sql.ErrConnDone), domain.ErrTransient))
}

func TestClassifyNoRows(t *testing.T) {
	assert.True(t, errors.Is(classify("op", sql.ErrNoRows), domain.ErrNotFound))
}

func TestClassifyUnknownErrorWraps(t *testing.T) {
	cause := errors.New("boom")
	got := classify("commit transaction", cause)
	assert.True(t, errors.Is(got, cause))
	assert.Contains(t, got.Error(), "commit transaction")
	assert.False(t, domain.IsRetryable(got))
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify("op", nil))
}
