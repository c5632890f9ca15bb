package models

import (
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/google/uuid"
)

type CreateTopUpRequestParams struct {
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Provider      string `json:"provider"`
	PhoneNumber   string `json:"phone_number"`
	BankName      string `json:"bank_name"`
	BranchName    string `json:"branch_name"`
	Reason        string `json:"reason"`
}

// ReviewTopUpRequestParams carries the reviewer's verdict. Payment
// fields may be filled in at approval time when the requester left them
// out; the rejection reason is only meaningful for a decline and is
// accepted under either key.
type ReviewTopUpRequestParams struct {
	Status          string `json:"status" binding:"required"`
	Amount          string `json:"amount"`
	PaymentMethod   string `json:"payment_method"`
	Provider        string `json:"provider"`
	PhoneNumber     string `json:"phone_number"`
	BankName        string `json:"bank_name"`
	BranchName      string `json:"branch_name"`
	RejectionReason string `json:"rejection_reason"`
	Reason          string `json:"reason"`
}

// DeclineReason resolves the two accepted keys, preferring the
// documented rejection_reason.
func (p ReviewTopUpRequestParams) DeclineReason() string {
	if p.RejectionReason != "" {
		return p.RejectionReason
	}
	return p.Reason
}

type TopUpRequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          ID         `json:"user_id"`
	Amount          string     `json:"amount"`
	PaymentMethod   string     `json:"payment_method,omitempty"`
	Provider        string     `json:"provider,omitempty"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	BankName        string     `json:"bank_name,omitempty"`
	BranchName      string     `json:"branch_name,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ReviewedBy      ID         `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	NewBalance      string     `json:"new_balance,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type TopUpRequestCollection struct {
	Requests []*TopUpRequestResponse `json:"requests"`
	Total    int64                   `json:"total"`
	Page     int32                   `json:"page"`
	PageSize int32                   `json:"page_size"`
}

func ToTopUpRequestResponse(r *db.WalletRequest) *TopUpRequestResponse {
	resp := &TopUpRequestResponse{
		ID:              r.ID,
		UserID:          ID(r.UserID),
		Amount:          r.Amount,
		PaymentMethod:   r.PaymentMethod.String,
		Provider:        r.Provider.String,
		PhoneNumber:     r.PhoneNumber.String,
		BankName:        r.BankName.String,
		BranchName:      r.BranchName.String,
		Reason:          r.Reason.String,
		Status:          r.Status,
		ReviewedBy:      ID(r.ReviewedBy.Int64),
		RejectionReason: r.RejectionReason.String,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.ReviewedAt.Valid {
		t := r.ReviewedAt.Time
		resp.ReviewedAt = &t
	}
	if r.ConfirmedAt.Valid {
		t := r.ConfirmedAt.Time
		resp.ConfirmedAt = &t
	}
	return resp
}

func ToTopUpRequestCollection(requests []db.WalletRequest, total int64, page, pageSize int32) *TopUpRequestCollection {
	out := make([]*TopUpRequestResponse, len(requests))
	for i := range requests {
		out[i] = ToTopUpRequestResponse(&requests[i])
	}
	return &TopUpRequestCollection{
		Requests: out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
