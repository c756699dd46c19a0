package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	q DBTX
}

func NewOrderRepository(q DBTX) repository.OrderRepository {
	return &orderRepository{q: q}
}

const orderColumns = `o.id, o.vehicle_id, o.client_id, o.employee_id, o.status_id, s.name, o.issue_date, o.return_date, o.price_cents, o.extras, o.created_on, o.updated_on`

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o.Extras == nil {
		o.Extras = []string{}
	}
	query := `INSERT INTO orders (vehicle_id, client_id, employee_id, status_id, issue_date, return_date, price_cents, extras, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		o.VehicleID, o.ClientID, o.EmployeeID, o.StatusID,
		o.IssueDate, o.ReturnDate, o.PriceCents, pq.Array(o.Extras), now, now,
	).Scan(&o.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o JOIN statuses s ON s.id = o.status_id WHERE o.id = $1`
	o, err := r.scanOne(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("order %d not found", id)
	}
	return o, err
}

func (r *orderRepository) ListLiveOverlapping(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Order, error) {
	// Inclusive interval overlap: existing.start <= requested.end AND
	// existing.end >= requested.start.
	query := `SELECT ` + orderColumns + `
	          FROM orders o JOIN statuses s ON s.id = o.status_id
	          WHERE o.vehicle_id = $1
	            AND s.name = ANY($2)
	            AND o.issue_date <= $3
	            AND o.return_date >= $4
	          ORDER BY o.issue_date ASC`
	rows, err := r.q.QueryContext(ctx, query, vehicleID, pq.Array(domain.LiveOrderStatuses), to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *orderRepository) FindOpenMaintenance(ctx context.Context, vehicleID int32, onDate time.Time) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
	          FROM orders o JOIN statuses s ON s.id = o.status_id
	          WHERE o.vehicle_id = $1
	            AND s.name = $2
	            AND o.issue_date <= $3
	            AND o.return_date >= $3
	          ORDER BY o.issue_date ASC
	          LIMIT 1`
	o, err := r.scanOne(r.q.QueryRowContext(ctx, query, vehicleID, domain.StatusMaintenance, onDate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

func (r *orderRepository) CloseStatus(ctx context.Context, orderID, statusID int32, returnDate *time.Time) error {
	query := `UPDATE orders
	          SET status_id = $1, return_date = COALESCE($2, return_date), updated_on = $3
	          WHERE id = $4`
	result, err := r.q.ExecContext(ctx, query, statusID, returnDate, time.Now(), orderID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("order %d not found", orderID)
	}
	return nil
}

func (r *orderRepository) CountBlockingDeletion(ctx context.Context, vehicleID int32, today time.Time) (int32, error) {
	// Maintenance-only history never blocks deletion, so the maintenance
	// status is deliberately absent from the blocking set.
	blocking := []string{domain.StatusPending, domain.StatusActive, domain.StatusRented}
	query := `SELECT count(*)
	          FROM orders o JOIN statuses s ON s.id = o.status_id
	          WHERE o.vehicle_id = $1
	            AND s.name = ANY($2)
	            AND o.return_date >= $3`
	var count int32
	err := r.q.QueryRowContext(ctx, query, vehicleID, pq.Array(blocking), today).Scan(&count)
	return count, err
}

func (r *orderRepository) ListByVehicle(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	var count int32
	if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM orders WHERE vehicle_id = $1`, vehicleID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + `
	          FROM orders o JOIN statuses s ON s.id = o.status_id
	          WHERE o.vehicle_id = $1
	          ORDER BY o.created_on DESC
	          LIMIT $2 OFFSET $3`
	rows, err := r.q.QueryContext(ctx, query, vehicleID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	orders, err := r.scanAll(rows)
	return orders, count, err
}

func (r *orderRepository) ListDuePending(ctx context.Context, onDate time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
	          FROM orders o JOIN statuses s ON s.id = o.status_id
	          WHERE s.name = $1 AND o.issue_date <= $2
	          ORDER BY o.issue_date ASC`
	rows, err := r.q.QueryContext(ctx, query, domain.StatusPending, onDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *orderRepository) ListExpiredMaintenance(ctx context.Context, asOf time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + `
	          FROM orders o JOIN statuses s ON s.id = o.status_id
	          WHERE s.name = $1 AND o.return_date < $2
	          ORDER BY o.return_date ASC`
	rows, err := r.q.QueryContext(ctx, query, domain.StatusMaintenance, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *orderRepository) UpdateStatusID(ctx context.Context, orderID, statusID int32) error {
	result, err := r.q.ExecContext(ctx, `UPDATE orders SET status_id = $1, updated_on = $2 WHERE id = $3`, statusID, time.Now(), orderID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("order %d not found", orderID)
	}
	return nil
}

func (r *orderRepository) scanOne(row *sql.Row) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(
		&o.ID, &o.VehicleID, &o.ClientID, &o.EmployeeID, &o.StatusID, &o.Status,
		&o.IssueDate, &o.ReturnDate, &o.PriceCents, pq.Array(&o.Extras), &o.CreatedOn, &o.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) scanAll(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.VehicleID, &o.ClientID, &o.EmployeeID, &o.StatusID, &o.Status,
			&o.IssueDate, &o.ReturnDate, &o.PriceCents, pq.Array(&o.Extras), &o.CreatedOn, &o.UpdatedOn,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
