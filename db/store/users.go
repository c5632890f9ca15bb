package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID            int64
	FirstName     string
	LastName      string
	PhoneNumber   string
	Email         string
	PasswordHash  string
	Roles         []string
	WalletBalance string
	Verified      bool
	FcmToken      sql.NullString
	ExpoToken     sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const createUser = `
INSERT INTO users (first_name, last_name, phone_number, email, password_hash, roles)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, first_name, last_name, phone_number, email, password_hash, roles, wallet_balance, verified, fcm_token, expo_token, created_at, updated_at
`

type CreateUserParams struct {
	FirstName    string
	LastName     string
	PhoneNumber  string
	Email        string
	PasswordHash string
	Roles        []string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.FirstName,
		arg.LastName,
		arg.PhoneNumber,
		arg.Email,
		arg.PasswordHash,
		pq.Array(arg.Roles),
	)
	return scanUser(row)
}

const getUserByID = `
SELECT id, first_name, last_name, phone_number, email, password_hash, roles, wallet_balance, verified, fcm_token, expo_token, created_at, updated_at
FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	return scanUser(row)
}

const getUserByPhone = `
SELECT id, first_name, last_name, phone_number, email, password_hash, roles, wallet_balance, verified, fcm_token, expo_token, created_at, updated_at
FROM users WHERE phone_number = $1
`

func (q *Queries) GetUserByPhone(ctx context.Context, phoneNumber string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByPhone, phoneNumber)
	return scanUser(row)
}

const creditUserBalance = `
UPDATE users
SET wallet_balance = wallet_balance + $1, updated_at = now()
WHERE id = $2
RETURNING wallet_balance
`

type CreditUserBalanceParams struct {
	Amount string
	ID     int64
}

func (q *Queries) CreditUserBalance(ctx context.Context, arg CreditUserBalanceParams) (string, error) {
	row := q.db.QueryRowContext(ctx, creditUserBalance, arg.Amount, arg.ID)
	var walletBalance string
	err := row.Scan(&walletBalance)
	return walletBalance, err
}

const debitUserBalance = `
UPDATE users
SET wallet_balance = wallet_balance - $1, updated_at = now()
WHERE id = $2 AND wallet_balance >= $1
RETURNING wallet_balance
`

type DebitUserBalanceParams struct {
	Amount string
	ID     int64
}

func (q *Queries) DebitUserBalance(ctx context.Context, arg DebitUserBalanceParams) (string, error) {
	row := q.db.QueryRowContext(ctx, debitUserBalance, arg.Amount, arg.ID)
	var walletBalance string
	err := row.Scan(&walletBalance)
	return walletBalance, err
}

const markUserVerified = `
UPDATE users SET verified = true, updated_at = now() WHERE id = $1
`

func (q *Queries) MarkUserVerified(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markUserVerified, id)
	return err
}

const updateUserPushTokens = `
UPDATE users SET fcm_token = $1, expo_token = $2, updated_at = now() WHERE id = $3
`

type UpdateUserPushTokensParams struct {
	FcmToken  sql.NullString
	ExpoToken sql.NullString
	ID        int64
}

func (q *Queries) UpdateUserPushTokens(ctx context.Context, arg UpdateUserPushTokensParams) error {
	_, err := q.db.ExecContext(ctx, updateUserPushTokens, arg.FcmToken, arg.ExpoToken, arg.ID)
	return err
}

func scanUser(row *sql.Row) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.FirstName,
		&i.LastName,
		&i.PhoneNumber,
		&i.Email,
		&i.PasswordHash,
		pq.Array(&i.Roles),
		&i.WalletBalance,
		&i.Verified,
		&i.FcmToken,
		&i.ExpoToken,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
