package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type vehicleRepository struct {
	q DBTX
}

func NewVehicleRepository(q DBTX) repository.VehicleRepository {
	return &vehicleRepository{q: q}
}

const vehicleColumns = `id, brand, model, color, fuel_type, transmission, year, price_per_day_cents, mileage, description, status, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.Status == "" {
		v.Status = domain.StatusAvailable
	}
	query := `INSERT INTO vehicles (brand, model, color, fuel_type, transmission, year, price_per_day_cents, mileage, description, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		v.Brand, v.Model, v.Color, v.FuelType, v.Transmission, v.Year,
		v.PricePerDayCents, v.Mileage, v.Description, v.Status, now, now,
	).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return r.get(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
}

func (r *vehicleRepository) LockByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return r.get(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id)
}

func (r *vehicleRepository) get(ctx context.Context, query string, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Brand, &v.Model, &v.Color, &v.FuelType, &v.Transmission,
		&v.Year, &v.PricePerDayCents, &v.Mileage, &v.Description, &v.Status,
		&v.CreatedOn, &v.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("vehicle %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	var count int32
	if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM vehicles`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.Color, &v.FuelType, &v.Transmission,
			&v.Year, &v.PricePerDayCents, &v.Mileage, &v.Description, &v.Status,
			&v.CreatedOn, &v.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}

// UpdateStatus is the single write path for the denormalized status column.
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int32, status string) error {
	query := `UPDATE vehicles SET status = $1, updated_on = $2 WHERE id = $3`
	result, err := r.q.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("vehicle %d not found", id)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("vehicle %d not found", id)
	}
	return nil
}
