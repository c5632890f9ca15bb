package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type Wallet struct {
	ID           uuid.UUID
	Name         string
	Type         string
	Currency     string
	Balance      string
	SystemWallet bool
	Metadata     pqtype.NullRawMessage
	UserID       sql.NullInt64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createWallet = `
INSERT INTO wallets (name, type, currency, balance, system_wallet, metadata, user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, type, currency, balance, system_wallet, metadata, user_id, created_at, updated_at
`

type CreateWalletParams struct {
	Name         string
	Type         string
	Currency     string
	Balance      string
	SystemWallet bool
	Metadata     pqtype.NullRawMessage
	UserID       sql.NullInt64
}

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, createWallet,
		arg.Name,
		arg.Type,
		arg.Currency,
		arg.Balance,
		arg.SystemWallet,
		arg.Metadata,
		arg.UserID,
	)
	return scanWallet(row)
}

const getAppWallet = `
SELECT id, name, type, currency, balance, system_wallet, metadata, user_id, created_at, updated_at
FROM wallets WHERE system_wallet = true LIMIT 1
`

// GetAppWallet returns the singleton system wallet that backs top-up
// approvals.
func (q *Queries) GetAppWallet(ctx context.Context) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, getAppWallet)
	return scanWallet(row)
}

const debitAppWallet = `
UPDATE wallets
SET balance = balance - $1, updated_at = now()
WHERE system_wallet = true AND balance >= $1
RETURNING id, name, type, currency, balance, system_wallet, metadata, user_id, created_at, updated_at
`

// DebitAppWallet decrements the system wallet in a single conditional
// statement. sql.ErrNoRows means the balance was short of the amount.
func (q *Queries) DebitAppWallet(ctx context.Context, amount string) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, debitAppWallet, amount)
	return scanWallet(row)
}

const creditAppWallet = `
UPDATE wallets
SET balance = balance + $1, updated_at = now()
WHERE system_wallet = true
RETURNING id, name, type, currency, balance, system_wallet, metadata, user_id, created_at, updated_at
`

func (q *Queries) CreditAppWallet(ctx context.Context, amount string) (Wallet, error) {
	row := q.db.QueryRowContext(ctx, creditAppWallet, amount)
	return scanWallet(row)
}

const getWalletsByUserID = `
SELECT id, name, type, currency, balance, system_wallet, metadata, user_id, created_at, updated_at
FROM wallets WHERE user_id = $1 ORDER BY created_at
`

func (q *Queries) GetWalletsByUserID(ctx context.Context, userID sql.NullInt64) ([]Wallet, error) {
	rows, err := q.db.QueryContext(ctx, getWalletsByUserID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Wallet
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Type,
			&i.Currency,
			&i.Balance,
			&i.SystemWallet,
			&i.Metadata,
			&i.UserID,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanWallet(row *sql.Row) (Wallet, error) {
	var i Wallet
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Currency,
		&i.Balance,
		&i.SystemWallet,
		&i.Metadata,
		&i.UserID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
