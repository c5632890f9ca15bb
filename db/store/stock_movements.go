package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type StockMovement struct {
	ID              uuid.UUID
	Commodity       string
	QuantityKg      string
	FromWarehouseID int64
	ToWarehouseID   int64
	Status          string
	InitiatedBy     int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const stockMovementColumns = `id, commodity, quantity_kg, from_warehouse_id, to_warehouse_id, status, initiated_by, created_at, updated_at`

const createStockMovement = `
INSERT INTO stock_movements (commodity, quantity_kg, from_warehouse_id, to_warehouse_id, status, initiated_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + stockMovementColumns

type CreateStockMovementParams struct {
	Commodity       string
	QuantityKg      string
	FromWarehouseID int64
	ToWarehouseID   int64
	Status          string
	InitiatedBy     int64
}

func (q *Queries) CreateStockMovement(ctx context.Context, arg CreateStockMovementParams) (StockMovement, error) {
	row := q.db.QueryRowContext(ctx, createStockMovement,
		arg.Commodity,
		arg.QuantityKg,
		arg.FromWarehouseID,
		arg.ToWarehouseID,
		arg.Status,
		arg.InitiatedBy,
	)
	return scanStockMovement(row)
}

const getStockMovement = `
SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1
`

func (q *Queries) GetStockMovement(ctx context.Context, id uuid.UUID) (StockMovement, error) {
	row := q.db.QueryRowContext(ctx, getStockMovement, id)
	return scanStockMovement(row)
}

const listStockMovements = `
SELECT ` + stockMovementColumns + `
FROM stock_movements
WHERE ($1::bigint IS NULL OR from_warehouse_id = $1 OR to_warehouse_id = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListStockMovementsParams struct {
	WarehouseID sql.NullInt64
	Limit       int32
	Offset      int32
}

func (q *Queries) ListStockMovements(ctx context.Context, arg ListStockMovementsParams) ([]StockMovement, error) {
	rows, err := q.db.QueryContext(ctx, listStockMovements, arg.WarehouseID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StockMovement
	for rows.Next() {
		var i StockMovement
		if err := rows.Scan(
			&i.ID,
			&i.Commodity,
			&i.QuantityKg,
			&i.FromWarehouseID,
			&i.ToWarehouseID,
			&i.Status,
			&i.InitiatedBy,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanStockMovement(row *sql.Row) (StockMovement, error) {
	var i StockMovement
	err := row.Scan(
		&i.ID,
		&i.Commodity,
		&i.QuantityKg,
		&i.FromWarehouseID,
		&i.ToWarehouseID,
		&i.Status,
		&i.InitiatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
