package store

import (
	"context"
	"database/sql"
	"time"
)

type Warehouse struct {
	ID           int64
	Name         string
	Location     string
	CapacityTons string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const warehouseColumns = `id, name, location, capacity_tons, created_at, updated_at`

const createWarehouse = `
INSERT INTO warehouses (name, location, capacity_tons)
VALUES ($1, $2, $3)
RETURNING ` + warehouseColumns

type CreateWarehouseParams struct {
	Name         string
	Location     string
	CapacityTons string
}

func (q *Queries) CreateWarehouse(ctx context.Context, arg CreateWarehouseParams) (Warehouse, error) {
	row := q.db.QueryRowContext(ctx, createWarehouse, arg.Name, arg.Location, arg.CapacityTons)
	return scanWarehouse(row)
}

const getWarehouse = `
SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1
`

func (q *Queries) GetWarehouse(ctx context.Context, id int64) (Warehouse, error) {
	row := q.db.QueryRowContext(ctx, getWarehouse, id)
	return scanWarehouse(row)
}

const updateWarehouse = `
UPDATE warehouses
SET name = $2, location = $3, capacity_tons = $4, updated_at = now()
WHERE id = $1
RETURNING ` + warehouseColumns

type UpdateWarehouseParams struct {
	ID           int64
	Name         string
	Location     string
	CapacityTons string
}

func (q *Queries) UpdateWarehouse(ctx context.Context, arg UpdateWarehouseParams) (Warehouse, error) {
	row := q.db.QueryRowContext(ctx, updateWarehouse, arg.ID, arg.Name, arg.Location, arg.CapacityTons)
	return scanWarehouse(row)
}

const deleteWarehouse = `
DELETE FROM warehouses WHERE id = $1
`

func (q *Queries) DeleteWarehouse(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteWarehouse, id)
	return err
}

const listWarehouses = `
SELECT ` + warehouseColumns + ` FROM warehouses ORDER BY name
`

func (q *Queries) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := q.db.QueryContext(ctx, listWarehouses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Warehouse
	for rows.Next() {
		var i Warehouse
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Location,
			&i.CapacityTons,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanWarehouse(row *sql.Row) (Warehouse, error) {
	var i Warehouse
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Location,
		&i.CapacityTons,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type WarehouseStock struct {
	WarehouseID int64
	Commodity   string
	QuantityKg  string
	UpdatedAt   time.Time
}

const getWarehouseStock = `
SELECT warehouse_id, commodity, quantity_kg, updated_at
FROM warehouse_stock WHERE warehouse_id = $1 AND commodity = $2
`

type GetWarehouseStockParams struct {
	WarehouseID int64
	Commodity   string
}

func (q *Queries) GetWarehouseStock(ctx context.Context, arg GetWarehouseStockParams) (WarehouseStock, error) {
	row := q.db.QueryRowContext(ctx, getWarehouseStock, arg.WarehouseID, arg.Commodity)
	var i WarehouseStock
	err := row.Scan(&i.WarehouseID, &i.Commodity, &i.QuantityKg, &i.UpdatedAt)
	return i, err
}

const listWarehouseStock = `
SELECT warehouse_id, commodity, quantity_kg, updated_at
FROM warehouse_stock WHERE warehouse_id = $1 ORDER BY commodity
`

func (q *Queries) ListWarehouseStock(ctx context.Context, warehouseID int64) ([]WarehouseStock, error) {
	rows, err := q.db.QueryContext(ctx, listWarehouseStock, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WarehouseStock
	for rows.Next() {
		var i WarehouseStock
		if err := rows.Scan(&i.WarehouseID, &i.Commodity, &i.QuantityKg, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const debitWarehouseStock = `
UPDATE warehouse_stock
SET quantity_kg = quantity_kg - $3, updated_at = now()
WHERE warehouse_id = $1 AND commodity = $2 AND quantity_kg >= $3
RETURNING warehouse_id, commodity, quantity_kg, updated_at
`

type DebitWarehouseStockParams struct {
	WarehouseID int64
	Commodity   string
	QuantityKg  string
}

// DebitWarehouseStock is conditional on sufficient quantity, the same
// single-statement guard the wallet debit uses. sql.ErrNoRows means
// the warehouse did not hold enough of the commodity.
func (q *Queries) DebitWarehouseStock(ctx context.Context, arg DebitWarehouseStockParams) (WarehouseStock, error) {
	row := q.db.QueryRowContext(ctx, debitWarehouseStock, arg.WarehouseID, arg.Commodity, arg.QuantityKg)
	var i WarehouseStock
	err := row.Scan(&i.WarehouseID, &i.Commodity, &i.QuantityKg, &i.UpdatedAt)
	return i, err
}

const creditWarehouseStock = `
INSERT INTO warehouse_stock (warehouse_id, commodity, quantity_kg)
VALUES ($1, $2, $3)
ON CONFLICT (warehouse_id, commodity)
DO UPDATE SET quantity_kg = warehouse_stock.quantity_kg + EXCLUDED.quantity_kg, updated_at = now()
RETURNING warehouse_id, commodity, quantity_kg, updated_at
`

type CreditWarehouseStockParams struct {
	WarehouseID int64
	Commodity   string
	QuantityKg  string
}

func (q *Queries) CreditWarehouseStock(ctx context.Context, arg CreditWarehouseStockParams) (WarehouseStock, error) {
	row := q.db.QueryRowContext(ctx, creditWarehouseStock, arg.WarehouseID, arg.Commodity, arg.QuantityKg)
	var i WarehouseStock
	err := row.Scan(&i.WarehouseID, &i.Commodity, &i.QuantityKg, &i.UpdatedAt)
	return i, err
}
