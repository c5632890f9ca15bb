package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Pickup struct {
	ID           uuid.UUID
	PurchaseID   uuid.UUID
	ScheduledFor time.Time
	VehicleReg   string
	DriverName   string
	Status       string
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const pickupColumns = `id, purchase_id, scheduled_for, vehicle_reg, driver_name, status, created_by, created_at, updated_at`

const createPickup = `
INSERT INTO pickups (purchase_id, scheduled_for, vehicle_reg, driver_name, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + pickupColumns

type CreatePickupParams struct {
	PurchaseID   uuid.UUID
	ScheduledFor time.Time
	VehicleReg   string
	DriverName   string
	Status       string
	CreatedBy    int64
}

func (q *Queries) CreatePickup(ctx context.Context, arg CreatePickupParams) (Pickup, error) {
	row := q.db.QueryRowContext(ctx, createPickup,
		arg.PurchaseID,
		arg.ScheduledFor,
		arg.VehicleReg,
		arg.DriverName,
		arg.Status,
		arg.CreatedBy,
	)
	return scanPickup(row)
}

const getPickup = `
SELECT ` + pickupColumns + ` FROM pickups WHERE id = $1
`

func (q *Queries) GetPickup(ctx context.Context, id uuid.UUID) (Pickup, error) {
	row := q.db.QueryRowContext(ctx, getPickup, id)
	return scanPickup(row)
}

const updatePickupStatus = `
UPDATE pickups SET status = $2, updated_at = now() WHERE id = $1
RETURNING ` + pickupColumns

type UpdatePickupStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdatePickupStatus(ctx context.Context, arg UpdatePickupStatusParams) (Pickup, error) {
	row := q.db.QueryRowContext(ctx, updatePickupStatus, arg.ID, arg.Status)
	return scanPickup(row)
}

const listPickupsByPurchase = `
SELECT ` + pickupColumns + ` FROM pickups WHERE purchase_id = $1 ORDER BY scheduled_for
`

func (q *Queries) ListPickupsByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]Pickup, error) {
	rows, err := q.db.QueryContext(ctx, listPickupsByPurchase, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Pickup
	for rows.Next() {
		var i Pickup
		if err := rows.Scan(
			&i.ID,
			&i.PurchaseID,
			&i.ScheduledFor,
			&i.VehicleReg,
			&i.DriverName,
			&i.Status,
			&i.CreatedBy,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanPickup(row *sql.Row) (Pickup, error) {
	var i Pickup
	err := row.Scan(
		&i.ID,
		&i.PurchaseID,
		&i.ScheduledFor,
		&i.VehicleReg,
		&i.DriverName,
		&i.Status,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
