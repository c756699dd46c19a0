package service

import (
	"testing"
	"time"

	"autorent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// Query fragments matched as regular expressions against the statements the
// repositories issue. Expectations are ordered, so a fragment only has to
// identify its own statement.
const (
	qLockVehicle   = `FROM vehicles WHERE id = \$1 FOR UPDATE`
	qGetVehicle    = `FROM vehicles WHERE id = \$1`
	qListOverlap   = `o\.return_date >= \$4`
	qOverlapToday  = `o\.issue_date <= \$3`
	qResolveStatus = `SELECT id FROM statuses WHERE name = \$1`
	qInsertOrder   = `INSERT INTO orders`
	qGetOrder      = `WHERE o\.id = \$1`
	qUpdateOrder   = `UPDATE orders`
	qUpdateVehicle = `UPDATE vehicles SET status`
	qOpenMaint     = `LIMIT 1`
	qCountBlocking = `SELECT count\(\*\)`
	qDeleteVehicle = `DELETE FROM vehicles WHERE id = \$1`
	qDuePending    = `o\.issue_date <= \$2`
	qExpiredMaint  = `o\.return_date < \$2`
)

var vehicleCols = []string{
	"id", "brand", "model", "color", "fuel_type", "transmission", "year",
	"price_per_day_cents", "mileage", "description", "status", "created_on", "updated_on",
}

var orderCols = []string{
	"id", "vehicle_id", "client_id", "employee_id", "status_id", "name",
	"issue_date", "return_date", "price_cents", "extras", "created_on", "updated_on",
}

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewStore(db), mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func vehicleRows(id, pricePerDayCents int32, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(vehicleCols).AddRow(
		id, "Toyota", "Corolla", "white", "petrol", "automatic", 2022,
		pricePerDayCents, 42000, "compact sedan", status, now, now,
	)
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows(orderCols)
}

func addOrderRow(rows *sqlmock.Rows, id, vehicleID, statusID int32, status string, issue, ret time.Time, priceCents int32) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, vehicleID, nil, nil, statusID, status, issue, ret, priceCents, "{}", now, now)
}
