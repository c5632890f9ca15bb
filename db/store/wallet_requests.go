package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type WalletRequest struct {
	ID              uuid.UUID
	UserID          int64
	Amount          string
	PaymentMethod   sql.NullString
	Provider        sql.NullString
	PhoneNumber     sql.NullString
	BankName        sql.NullString
	BranchName      sql.NullString
	Reason          sql.NullString
	Status          string
	ReviewedBy      sql.NullInt64
	ReviewedAt      sql.NullTime
	RejectionReason sql.NullString
	ConfirmedAt     sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const walletRequestColumns = `id, user_id, amount, payment_method, provider, phone_number, bank_name, branch_name, reason, status, reviewed_by, reviewed_at, rejection_reason, confirmed_at, created_at, updated_at`

const createWalletRequest = `
INSERT INTO wallet_requests (user_id, amount, payment_method, provider, phone_number, bank_name, branch_name, reason, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + walletRequestColumns

type CreateWalletRequestParams struct {
	UserID        int64
	Amount        string
	PaymentMethod sql.NullString
	Provider      sql.NullString
	PhoneNumber   sql.NullString
	BankName      sql.NullString
	BranchName    sql.NullString
	Reason        sql.NullString
	Status        string
}

func (q *Queries) CreateWalletRequest(ctx context.Context, arg CreateWalletRequestParams) (WalletRequest, error) {
	row := q.db.QueryRowContext(ctx, createWalletRequest,
		arg.UserID,
		arg.Amount,
		arg.PaymentMethod,
		arg.Provider,
		arg.PhoneNumber,
		arg.BankName,
		arg.BranchName,
		arg.Reason,
		arg.Status,
	)
	return scanWalletRequest(row)
}

const getWalletRequest = `
SELECT ` + walletRequestColumns + `
FROM wallet_requests WHERE id = $1
`

func (q *Queries) GetWalletRequest(ctx context.Context, id uuid.UUID) (WalletRequest, error) {
	row := q.db.QueryRowContext(ctx, getWalletRequest, id)
	return scanWalletRequest(row)
}

const markWalletRequestApproved = `
UPDATE wallet_requests
SET status = 'approved',
    reviewed_by = $2,
    reviewed_at = now(),
    payment_method = COALESCE($3, payment_method),
    provider = COALESCE($4, provider),
    phone_number = COALESCE($5, phone_number),
    bank_name = COALESCE($6, bank_name),
    branch_name = COALESCE($7, branch_name),
    updated_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING ` + walletRequestColumns

type MarkWalletRequestApprovedParams struct {
	ID            uuid.UUID
	ReviewedBy    int64
	PaymentMethod sql.NullString
	Provider      sql.NullString
	PhoneNumber   sql.NullString
	BankName      sql.NullString
	BranchName    sql.NullString
}

// MarkWalletRequestApproved flips a pending request to approved in one
// conditional statement. sql.ErrNoRows means the request was not
// pending any more, so the caller lost the race or the state is wrong.
func (q *Queries) MarkWalletRequestApproved(ctx context.Context, arg MarkWalletRequestApprovedParams) (WalletRequest, error) {
	row := q.db.QueryRowContext(ctx, markWalletRequestApproved,
		arg.ID,
		arg.ReviewedBy,
		arg.PaymentMethod,
		arg.Provider,
		arg.PhoneNumber,
		arg.BankName,
		arg.BranchName,
	)
	return scanWalletRequest(row)
}

const markWalletRequestDeclined = `
UPDATE wallet_requests
SET status = 'declined',
    reviewed_by = $2,
    reviewed_at = now(),
    rejection_reason = $3,
    updated_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING ` + walletRequestColumns

type MarkWalletRequestDeclinedParams struct {
	ID              uuid.UUID
	ReviewedBy      int64
	RejectionReason string
}

func (q *Queries) MarkWalletRequestDeclined(ctx context.Context, arg MarkWalletRequestDeclinedParams) (WalletRequest, error) {
	row := q.db.QueryRowContext(ctx, markWalletRequestDeclined, arg.ID, arg.ReviewedBy, arg.RejectionReason)
	return scanWalletRequest(row)
}

const markWalletRequestConfirmed = `
UPDATE wallet_requests
SET status = 'successful', confirmed_at = now(), updated_at = now()
WHERE id = $1 AND status = 'approved'
RETURNING ` + walletRequestColumns

func (q *Queries) MarkWalletRequestConfirmed(ctx context.Context, id uuid.UUID) (WalletRequest, error) {
	row := q.db.QueryRowContext(ctx, markWalletRequestConfirmed, id)
	return scanWalletRequest(row)
}

const revertWalletRequestToPending = `
UPDATE wallet_requests
SET status = 'pending', reviewed_by = NULL, reviewed_at = NULL, updated_at = now()
WHERE id = $1 AND status = 'approved'
`

// RevertWalletRequestToPending compensates a degraded-mode approval
// whose wallet debit could not complete.
func (q *Queries) RevertWalletRequestToPending(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, revertWalletRequestToPending, id)
	return err
}

const listWalletRequests = `
SELECT ` + walletRequestColumns + `
FROM wallet_requests
WHERE ($1::bigint IS NULL OR user_id = $1)
  AND ($2::text IS NULL OR status = $2)
  AND ($3::text IS NULL OR payment_method = $3)
  AND ($4::timestamptz IS NULL OR created_at >= $4)
  AND ($5::timestamptz IS NULL OR created_at <= $5)
ORDER BY created_at DESC
LIMIT $6 OFFSET $7
`

type ListWalletRequestsParams struct {
	UserID        sql.NullInt64
	Status        sql.NullString
	PaymentMethod sql.NullString
	From          sql.NullTime
	To            sql.NullTime
	Limit         int32
	Offset        int32
}

func (q *Queries) ListWalletRequests(ctx context.Context, arg ListWalletRequestsParams) ([]WalletRequest, error) {
	rows, err := q.db.QueryContext(ctx, listWalletRequests,
		arg.UserID,
		arg.Status,
		arg.PaymentMethod,
		arg.From,
		arg.To,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WalletRequest
	for rows.Next() {
		var i WalletRequest
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Amount,
			&i.PaymentMethod,
			&i.Provider,
			&i.PhoneNumber,
			&i.BankName,
			&i.BranchName,
			&i.Reason,
			&i.Status,
			&i.ReviewedBy,
			&i.ReviewedAt,
			&i.RejectionReason,
			&i.ConfirmedAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const countWalletRequests = `
SELECT count(*)
FROM wallet_requests
WHERE ($1::bigint IS NULL OR user_id = $1)
  AND ($2::text IS NULL OR status = $2)
  AND ($3::text IS NULL OR payment_method = $3)
  AND ($4::timestamptz IS NULL OR created_at >= $4)
  AND ($5::timestamptz IS NULL OR created_at <= $5)
`

type CountWalletRequestsParams struct {
	UserID        sql.NullInt64
	Status        sql.NullString
	PaymentMethod sql.NullString
	From          sql.NullTime
	To            sql.NullTime
}

func (q *Queries) CountWalletRequests(ctx context.Context, arg CountWalletRequestsParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countWalletRequests,
		arg.UserID,
		arg.Status,
		arg.PaymentMethod,
		arg.From,
		arg.To,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func scanWalletRequest(row *sql.Row) (WalletRequest, error) {
	var i WalletRequest
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Amount,
		&i.PaymentMethod,
		&i.Provider,
		&i.PhoneNumber,
		&i.BankName,
		&i.BranchName,
		&i.Reason,
		&i.Status,
		&i.ReviewedBy,
		&i.ReviewedAt,
		&i.RejectionReason,
		&i.ConfirmedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
