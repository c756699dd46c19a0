package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"autorent-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "vehicle_id", "client_id", "employee_id", "status_id", "name",
	"issue_date", "return_date", "price_cents", "extras", "created_on", "updated_on",
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOrderListLiveOverlapping(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from, to := day(2025, time.June, 1), day(2025, time.June, 5)
	now := time.Now()
	mock.ExpectQuery(`o\.issue_date <= \$3`).
		WithArgs(int32(42), pq.Array(domain.LiveOrderStatuses), to, from).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(7, 42, 3, nil, 5, domain.StatusActive, day(2025, time.June, 3), day(2025, time.June, 8), 25000, `{"gps"}`, now, now))

	repo := NewOrderRepository(db)
	orders, err := repo.ListLiveOverlapping(context.Background(), 42, from, to)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int32(7), orders[0].ID)
	assert.Equal(t, domain.StatusActive, orders[0].Status)
	require.NotNil(t, orders[0].ClientID)
	assert.Equal(t, int32(3), *orders[0].ClientID)
	assert.Nil(t, orders[0].EmployeeID)
	assert.Equal(t, []string{"gps"}, orders[0].Extras)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderFindOpenMaintenanceNone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`LIMIT 1`).
		WithArgs(int32(42), domain.StatusMaintenance, day(2025, time.June, 1)).
		WillReturnRows(sqlmock.NewRows(orderCols))

	repo := NewOrderRepository(db)
	open, err := repo.FindOpenMaintenance(context.Background(), 42, day(2025, time.June, 1))

	require.NoError(t, err)
	assert.Nil(t, open)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCountBlockingDeletion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	today := day(2025, time.June, 1)
	mock.ExpectQuery(`o\.return_date >= \$3`).
		WithArgs(int32(42), sqlmock.AnyArg(), today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := NewOrderRepository(db)
	count, err := repo.CountBlockingDeletion(context.Background(), 42, today)

	require.NoError(t, err)
	assert.Equal(t, int32(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCloseStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE orders`).
		WithArgs(int32(6), nil, sqlmock.AnyArg(), int32(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewOrderRepository(db)
	err = repo.CloseStatus(context.Background(), 99, 6, nil)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
