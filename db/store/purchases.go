package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Purchase struct {
	ID          uuid.UUID
	FarmerID    int64
	SellerID    sql.NullInt64
	WarehouseID int64
	Commodity   string
	QuantityKg  string
	UnitPrice   string
	TotalCost   string
	Status      string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const purchaseColumns = `id, farmer_id, seller_id, warehouse_id, commodity, quantity_kg, unit_price, total_cost, status, created_by, created_at, updated_at`

const createPurchase = `
INSERT INTO purchases (farmer_id, seller_id, warehouse_id, commodity, quantity_kg, unit_price, total_cost, status, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + purchaseColumns

type CreatePurchaseParams struct {
	FarmerID    int64
	SellerID    sql.NullInt64
	WarehouseID int64
	Commodity   string
	QuantityKg  string
	UnitPrice   string
	TotalCost   string
	Status      string
	CreatedBy   int64
}

func (q *Queries) CreatePurchase(ctx context.Context, arg CreatePurchaseParams) (Purchase, error) {
	row := q.db.QueryRowContext(ctx, createPurchase,
		arg.FarmerID,
		arg.SellerID,
		arg.WarehouseID,
		arg.Commodity,
		arg.QuantityKg,
		arg.UnitPrice,
		arg.TotalCost,
		arg.Status,
		arg.CreatedBy,
	)
	return scanPurchase(row)
}

const getPurchase = `
SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1
`

func (q *Queries) GetPurchase(ctx context.Context, id uuid.UUID) (Purchase, error) {
	row := q.db.QueryRowContext(ctx, getPurchase, id)
	return scanPurchase(row)
}

const updatePurchaseStatus = `
UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1
RETURNING ` + purchaseColumns

type UpdatePurchaseStatusParams struct {
	ID     uuid.UUID
	Status string
}

func (q *Queries) UpdatePurchaseStatus(ctx context.Context, arg UpdatePurchaseStatusParams) (Purchase, error) {
	row := q.db.QueryRowContext(ctx, updatePurchaseStatus, arg.ID, arg.Status)
	return scanPurchase(row)
}

const listPurchases = `
SELECT ` + purchaseColumns + `
FROM purchases
WHERE ($1::bigint IS NULL OR farmer_id = $1)
  AND ($2::text IS NULL OR status = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4
`

type ListPurchasesParams struct {
	FarmerID sql.NullInt64
	Status   sql.NullString
	Limit    int32
	Offset   int32
}

func (q *Queries) ListPurchases(ctx context.Context, arg ListPurchasesParams) ([]Purchase, error) {
	rows, err := q.db.QueryContext(ctx, listPurchases, arg.FarmerID, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Purchase
	for rows.Next() {
		var i Purchase
		if err := rows.Scan(
			&i.ID,
			&i.FarmerID,
			&i.SellerID,
			&i.WarehouseID,
			&i.Commodity,
			&i.QuantityKg,
			&i.UnitPrice,
			&i.TotalCost,
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

func scanPurchase(row *sql.Row) (Purchase, error) {
	var i Purchase
	err := row.Scan(
		&i.ID,
		&i.FarmerID,
		&i.SellerID,
		&i.WarehouseID,
		&i.Commodity,
		&i.QuantityKg,
		&i.UnitPrice,
		&i.TotalCost,
		&i.Status,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
