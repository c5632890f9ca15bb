package store

import (
	"context"
	"database/sql"
	"time"
)

type Seller struct {
	ID           int64
	BusinessName string
	ContactName  string
	PhoneNumber  string
	Region       string
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const sellerColumns = `id, business_name, contact_name, phone_number, region, created_by, created_at, updated_at`

const createSeller = `
INSERT INTO sellers (business_name, contact_name, phone_number, region, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + sellerColumns

type CreateSellerParams struct {
	BusinessName string
	ContactName  string
	PhoneNumber  string
	Region       string
	CreatedBy    int64
}

func (q *Queries) CreateSeller(ctx context.Context, arg CreateSellerParams) (Seller, error) {
	row := q.db.QueryRowContext(ctx, createSeller,
		arg.BusinessName,
		arg.ContactName,
		arg.PhoneNumber,
		arg.Region,
		arg.CreatedBy,
	)
	return scanSeller(row)
}

const getSeller = `
SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1
`

func (q *Queries) GetSeller(ctx context.Context, id int64) (Seller, error) {
	row := q.db.QueryRowContext(ctx, getSeller, id)
	return scanSeller(row)
}

const updateSeller = `
UPDATE sellers
SET business_name = $2, contact_name = $3, phone_number = $4, region = $5, updated_at = now()
WHERE id = $1
RETURNING ` + sellerColumns

type UpdateSellerParams struct {
	ID           int64
	BusinessName string
	ContactName  string
	PhoneNumber  string
	Region       string
}

func (q *Queries) UpdateSeller(ctx context.Context, arg UpdateSellerParams) (Seller, error) {
	row := q.db.QueryRowContext(ctx, updateSeller,
		arg.ID,
		arg.BusinessName,
		arg.ContactName,
		arg.PhoneNumber,
		arg.Region,
	)
	return scanSeller(row)
}

const deleteSeller = `
DELETE FROM sellers WHERE id = $1
`

func (q *Queries) DeleteSeller(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSeller, id)
	return err
}

const listSellers = `
SELECT ` + sellerColumns + `
FROM sellers
WHERE ($1::text IS NULL OR region = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListSellersParams struct {
	Region sql.NullString
	Limit  int32
	Offset int32
}

func (q *Queries) ListSellers(ctx context.Context, arg ListSellersParams) ([]Seller, error) {
	rows, err := q.db.QueryContext(ctx, listSellers, arg.Region, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Seller
	for rows.Next() {
		var i Seller
		if err := rows.Scan(
			&i.ID,
			&i.BusinessName,
			&i.ContactName,
			&i.PhoneNumber,
			&i.Region,
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

func scanSeller(row *sql.Row) (Seller, error) {
	var i Seller
	err := row.Scan(
		&i.ID,
		&i.BusinessName,
		&i.ContactName,
		&i.PhoneNumber,
		&i.Region,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
