package store

import (
	"context"
	"database/sql"
	"time"
)

type Farmer struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Community   string
	Region      string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const farmerColumns = `id, first_name, last_name, phone_number, community, region, created_by, created_at, updated_at`

const createFarmer = `
INSERT INTO farmers (first_name, last_name, phone_number, community, region, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + farmerColumns

type CreateFarmerParams struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Community   string
	Region      string
	CreatedBy   int64
}

func (q *Queries) CreateFarmer(ctx context.Context, arg CreateFarmerParams) (Farmer, error) {
	row := q.db.QueryRowContext(ctx, createFarmer,
		arg.FirstName,
		arg.LastName,
		arg.PhoneNumber,
		arg.Community,
		arg.Region,
		arg.CreatedBy,
	)
	return scanFarmer(row)
}

const getFarmer = `
SELECT ` + farmerColumns + ` FROM farmers WHERE id = $1
`

func (q *Queries) GetFarmer(ctx context.Context, id int64) (Farmer, error) {
	row := q.db.QueryRowContext(ctx, getFarmer, id)
	return scanFarmer(row)
}

const updateFarmer = `
UPDATE farmers
SET first_name = $2, last_name = $3, phone_number = $4, community = $5, region = $6, updated_at = now()
WHERE id = $1
RETURNING ` + farmerColumns

type UpdateFarmerParams struct {
	ID          int64
	FirstName   string
	LastName    string
	PhoneNumber string
	Community   string
	Region      string
}

func (q *Queries) UpdateFarmer(ctx context.Context, arg UpdateFarmerParams) (Farmer, error) {
	row := q.db.QueryRowContext(ctx, updateFarmer,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.PhoneNumber,
		arg.Community,
		arg.Region,
	)
	return scanFarmer(row)
}

const deleteFarmer = `
DELETE FROM farmers WHERE id = $1
`

func (q *Queries) DeleteFarmer(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteFarmer, id)
	return err
}

const listFarmers = `
SELECT ` + farmerColumns + `
FROM farmers
WHERE ($1::text IS NULL OR region = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListFarmersParams struct {
	Region sql.NullString
	Limit  int32
	Offset int32
}

func (q *Queries) ListFarmers(ctx context.Context, arg ListFarmersParams) ([]Farmer, error) {
	rows, err := q.db.QueryContext(ctx, listFarmers, arg.Region, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Farmer
	for rows.Next() {
		var i Farmer
		if err := rows.Scan(
			&i.ID,
			&i.FirstName,
			&i.LastName,
			&i.PhoneNumber,
			&i.Community,
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

func scanFarmer(row *sql.Row) (Farmer, error) {
	var i Farmer
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.PhoneNumber,
		&i.Community,
		&i.Region,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
