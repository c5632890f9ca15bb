package walletrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/AgroVault/AgroVault-Backend/services/auth"
	"github.com/AgroVault/AgroVault-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine owns every state transition of a wallet request. Route
// handlers never write the ledger or the balances directly; they call
// into here and dispatch notifications only after a transition is
// reported back as applied.
type Engine struct {
	store  Store
	logger *logging.Logger
}

func NewEngine(store Store, logger *logging.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

type ApprovalParams struct {
	RequestID   uuid.UUID
	UserID      int64 // expected owner; zero skips the check
	Amount      decimal.Decimal
	InitiatedBy int64
	Details     PaymentDetails
}

type ApprovalResult struct {
	RequestID       uuid.UUID
	Request         db.WalletRequest
	NewBalance      decimal.Decimal
	AlreadyApproved bool
}

// ProcessApproval moves a pending request to approved, debiting the app
// wallet and crediting the requester in the same transaction. Calling it
// on an already-approved request is a no-op success, which is what makes
// retried auto-approvals safe.
func (e *Engine) ProcessApproval(ctx context.Context, p ApprovalParams) (*ApprovalResult, error) {
	return e.processApproval(ctx, p, false)
}

func (e *Engine) processApproval(ctx context.Context, p ApprovalParams, isRetry bool) (*ApprovalResult, error) {
	req, err := e.store.GetWalletRequest(ctx, p.RequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletRequestError(ErrRequestNotFound, p.RequestID.String())
	} else if err != nil {
		return nil, err
	}

	if p.UserID != 0 && p.UserID != req.UserID {
		return nil, NewWalletRequestError(ErrRequestNotFound, p.RequestID.String())
	}

	status := NormalizeStatus(req.Status)
	if status == StatusApproved {
		return &ApprovalResult{RequestID: req.ID, Request: req, AlreadyApproved: true}, nil
	}
	if status != StatusPending {
		return nil, NewWalletRequestError(stateError("approve", status), req.ID.String())
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("request %s carries a malformed amount: %w", req.ID, err)
	}
	if !p.Amount.IsZero() && !p.Amount.Equal(amount) {
		return nil, NewWalletRequestError(ErrInvalidAmount, req.ID.String())
	}
	if err := p.Details.Validate(); err != nil {
		return nil, NewWalletRequestError(err, req.ID.String())
	}

	var result ApprovalResult
	if isRetry {
		if err := e.applyApprovalDegraded(ctx, req, amount, p, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	txErr := e.store.ExecTx(ctx, func(s Store) error {
		return e.applyApproval(ctx, s, req, amount, p, &result)
	})
	if txErr != nil {
		if errors.Is(txErr, db.ErrTxUnsupported) {
			e.logger.Warn(fmt.Sprintf("store cannot open a transaction for request %s, retrying without cross-document atomicity", req.ID))
			return e.processApproval(ctx, p, true)
		}
		return nil, txErr
	}

	return &result, nil
}

func (e *Engine) applyApproval(ctx context.Context, s Store, req db.WalletRequest, amount decimal.Decimal, p ApprovalParams, result *ApprovalResult) error {
	wallet, err := s.GetAppWallet(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return NewWalletRequestError(ErrAppWalletMissing, req.ID.String())
	} else if err != nil {
		return err
	}

	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return fmt.Errorf("app wallet carries a malformed balance: %w", err)
	}
	if balance.LessThan(amount) {
		return NewWalletRequestError(ErrInsufficientFunds, req.ID.String())
	}

	updated, err := s.MarkWalletRequestApproved(ctx, db.MarkWalletRequestApprovedParams{
		ID:            req.ID,
		ReviewedBy:    p.InitiatedBy,
		PaymentMethod: nullString(string(p.Details.Method)),
		Provider:      nullString(p.Details.Provider),
		PhoneNumber:   nullString(p.Details.PhoneNumber),
		BankName:      nullString(p.Details.BankName),
		BranchName:    nullString(p.Details.BranchName),
	})
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race: someone else moved the request first.
		current, gerr := s.GetWalletRequest(ctx, req.ID)
		if gerr != nil {
			return gerr
		}
		if NormalizeStatus(current.Status) == StatusApproved {
			result.RequestID = current.ID
			result.Request = current
			result.AlreadyApproved = true
			return nil
		}
		return NewWalletRequestError(stateError("approve", NormalizeStatus(current.Status)), req.ID.String())
	} else if err != nil {
		return err
	}

	if _, err := s.DebitAppWallet(ctx, amount.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewWalletRequestError(ErrInsufficientFunds, req.ID.String())
		}
		return err
	}

	newBalance, err := s.CreditUserBalance(ctx, db.CreditUserBalanceParams{
		Amount: amount.String(),
		ID:     req.UserID,
	})
	if err != nil {
		return err
	}

	nb, err := decimal.NewFromString(newBalance)
	if err != nil {
		return fmt.Errorf("credited balance came back malformed: %w", err)
	}

	result.RequestID = updated.ID
	result.Request = updated
	result.NewBalance = nb
	return nil
}

// applyApprovalDegraded runs the approval as sequential single-row
// conditional updates. The conditional flip of the request row is the
// atomic linchpin: only the caller that wins it proceeds to move money,
// so a concurrent approval cannot double-debit even without a
// transaction. Money writes that fail afterwards are compensated
// best-effort.
func (e *Engine) applyApprovalDegraded(ctx context.Context, req db.WalletRequest, amount decimal.Decimal, p ApprovalParams, result *ApprovalResult) error {
	wallet, err := e.store.GetAppWallet(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return NewWalletRequestError(ErrAppWalletMissing, req.ID.String())
	} else if err != nil {
		return err
	}

	balance, err := decimal.NewFromString(wallet.Balance)
	if err != nil {
		return fmt.Errorf("app wallet carries a malformed balance: %w", err)
	}
	if balance.LessThan(amount) {
		return NewWalletRequestError(ErrInsufficientFunds, req.ID.String())
	}

	updated, err := e.store.MarkWalletRequestApproved(ctx, db.MarkWalletRequestApprovedParams{
		ID:            req.ID,
		ReviewedBy:    p.InitiatedBy,
		PaymentMethod: nullString(string(p.Details.Method)),
		Provider:      nullString(p.Details.Provider),
		PhoneNumber:   nullString(p.Details.PhoneNumber),
		BankName:      nullString(p.Details.BankName),
		BranchName:    nullString(p.Details.BranchName),
	})
	if errors.Is(err, sql.ErrNoRows) {
		current, gerr := e.store.GetWalletRequest(ctx, req.ID)
		if gerr != nil {
			return gerr
		}
		if NormalizeStatus(current.Status) == StatusApproved {
			result.RequestID = current.ID
			result.Request = current
			result.AlreadyApproved = true
			return nil
		}
		return NewWalletRequestError(stateError("approve", NormalizeStatus(current.Status)), req.ID.String())
	} else if err != nil {
		return err
	}

	if _, err := e.store.DebitAppWallet(ctx, amount.String()); err != nil {
		if revertErr := e.store.RevertWalletRequestToPending(ctx, req.ID); revertErr != nil {
			e.logger.Error(fmt.Sprintf("could not revert request %s to pending after failed debit: %v", req.ID, revertErr))
		}
		if errors.Is(err, sql.ErrNoRows) {
			return NewWalletRequestError(ErrInsufficientFunds, req.ID.String())
		}
		return err
	}

	newBalance, err := e.store.CreditUserBalance(ctx, db.CreditUserBalanceParams{
		Amount: amount.String(),
		ID:     req.UserID,
	})
	if err != nil {
		// Put the money back and reopen the request. If either
		// compensation fails the operator has to reconcile by hand.
		if _, compErr := e.store.CreditAppWallet(ctx, amount.String()); compErr != nil {
			e.logger.Error(fmt.Sprintf("could not re-credit app wallet for request %s: %v", req.ID, compErr))
		}
		if revertErr := e.store.RevertWalletRequestToPending(ctx, req.ID); revertErr != nil {
			e.logger.Error(fmt.Sprintf("could not revert request %s to pending after failed credit: %v", req.ID, revertErr))
		}
		return err
	}

	nb, err := decimal.NewFromString(newBalance)
	if err != nil {
		return fmt.Errorf("credited balance came back malformed: %w", err)
	}

	result.RequestID = updated.ID
	result.Request = updated
	result.NewBalance = nb
	return nil
}

type DeclineParams struct {
	RequestID   uuid.UUID
	InitiatedBy int64
	Reason      string
}

// Decline moves a pending request to declined. The reason is validated
// before any store access.
func (e *Engine) Decline(ctx context.Context, p DeclineParams) (*db.WalletRequest, error) {
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		return nil, NewWalletRequestError(ErrReasonRequired, p.RequestID.String())
	}
	if len(reason) > maxReasonLength {
		return nil, NewWalletRequestError(ErrReasonTooLong, p.RequestID.String())
	}

	req, err := e.store.GetWalletRequest(ctx, p.RequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletRequestError(ErrRequestNotFound, p.RequestID.String())
	} else if err != nil {
		return nil, err
	}

	if status := NormalizeStatus(req.Status); status != StatusPending {
		return nil, NewWalletRequestError(stateError("decline", status), req.ID.String())
	}

	apply := func(s Store) error {
		updated, err := s.MarkWalletRequestDeclined(ctx, db.MarkWalletRequestDeclinedParams{
			ID:              p.RequestID,
			ReviewedBy:      p.InitiatedBy,
			RejectionReason: reason,
		})
		if errors.Is(err, sql.ErrNoRows) {
			current, gerr := s.GetWalletRequest(ctx, p.RequestID)
			if gerr != nil {
				return gerr
			}
			return NewWalletRequestError(stateError("decline", NormalizeStatus(current.Status)), req.ID.String())
		} else if err != nil {
			return err
		}
		req = updated
		return nil
	}

	// Single-document update, but kept inside the same transactional
	// scaffold as approval so every transition shares one code path.
	err = e.store.ExecTx(ctx, apply)
	if errors.Is(err, db.ErrTxUnsupported) {
		e.logger.Warn(fmt.Sprintf("store cannot open a transaction for request %s, declining without one", req.ID))
		err = apply(e.store)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

type ConfirmParams struct {
	RequestID uuid.UUID
	UserID    int64 // caller; must own the request when non-zero
}

// ConfirmReceipt marks an approved request successful once the owner
// acknowledges the funds arrived. No balances move here; they moved at
// approval time.
func (e *Engine) ConfirmReceipt(ctx context.Context, p ConfirmParams) (*db.WalletRequest, error) {
	req, err := e.store.GetWalletRequest(ctx, p.RequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletRequestError(ErrRequestNotFound, p.RequestID.String())
	} else if err != nil {
		return nil, err
	}

	if p.UserID != 0 && p.UserID != req.UserID {
		return nil, NewWalletRequestError(ErrNotOwner, req.ID.String())
	}

	status := NormalizeStatus(req.Status)
	if status == StatusSuccessful {
		// Idempotent: the original confirmed_at stands.
		return &req, nil
	}
	if status != StatusApproved {
		return nil, NewWalletRequestError(fmt.Errorf("%w: only approved requests can be confirmed", ErrInvalidState), req.ID.String())
	}

	apply := func(s Store) error {
		updated, err := s.MarkWalletRequestConfirmed(ctx, p.RequestID)
		if errors.Is(err, sql.ErrNoRows) {
			current, gerr := s.GetWalletRequest(ctx, p.RequestID)
			if gerr != nil {
				return gerr
			}
			if NormalizeStatus(current.Status) == StatusSuccessful {
				req = current
				return nil
			}
			return NewWalletRequestError(fmt.Errorf("%w: only approved requests can be confirmed", ErrInvalidState), req.ID.String())
		} else if err != nil {
			return err
		}
		req = updated
		return nil
	}

	err = e.store.ExecTx(ctx, apply)
	if errors.Is(err, db.ErrTxUnsupported) {
		e.logger.Warn(fmt.Sprintf("store cannot open a transaction for request %s, confirming without one", req.ID))
		err = apply(e.store)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

type CreateParams struct {
	Identity auth.Identity
	Amount   decimal.Decimal
	Details  PaymentDetails
	Reason   string
}

// AutoApprovalNote is attached to the creation response when a
// privileged caller's request could not be auto-approved and was left
// pending instead.
const AutoApprovalNote = "request created but auto-approval did not complete; it remains pending for manual review"

// CreateRequest records a new top-up request. Regular users get a
// pending record; privileged callers are piped straight into the same
// approval transaction every reviewer uses, so the invariants hold no
// matter who initiates.
func (e *Engine) CreateRequest(ctx context.Context, p CreateParams) (*db.WalletRequest, *ApprovalResult, string, error) {
	if p.Amount.LessThanOrEqual(decimal.Zero) || p.Amount.GreaterThan(MaxRequestAmount) {
		return nil, nil, "", ErrInvalidAmount
	}
	if len(p.Reason) > maxReasonLength {
		return nil, nil, "", ErrReasonTooLong
	}
	if err := p.Details.Validate(); err != nil {
		return nil, nil, "", err
	}

	created, err := e.store.CreateWalletRequest(ctx, db.CreateWalletRequestParams{
		UserID:        p.Identity.ID,
		Amount:        p.Amount.String(),
		PaymentMethod: nullString(string(p.Details.Method)),
		Provider:      nullString(p.Details.Provider),
		PhoneNumber:   nullString(p.Details.PhoneNumber),
		BankName:      nullString(p.Details.BankName),
		BranchName:    nullString(p.Details.BranchName),
		Reason:        nullString(p.Reason),
		Status:        string(StatusPending),
	})
	if err != nil {
		return nil, nil, "", err
	}

	if !p.Identity.Privileged() {
		return &created, nil, "", nil
	}

	result, err := e.ProcessApproval(ctx, ApprovalParams{
		RequestID:   created.ID,
		InitiatedBy: p.Identity.ID,
	})
	if err != nil {
		// Auto-approval failure is not a creation failure; the
		// record stays pending for manual review.
		e.logger.Error(fmt.Sprintf("auto-approval of request %s failed: %v", created.ID, err))
		return &created, nil, AutoApprovalNote, nil
	}

	return &result.Request, result, "", nil
}

type ListParams struct {
	Identity      auth.Identity
	UserID        int64 // filter; ignored for non-privileged callers
	Status        string
	PaymentMethod string
	From          sql.NullTime
	To            sql.NullTime
	Page          int32
	PageSize      int32
}

type ListResult struct {
	Requests []db.WalletRequest
	Total    int64
	Page     int32
	PageSize int32
}

// List returns a page of requests. Regular users only ever see their
// own, whatever filter they pass.
func (e *Engine) List(ctx context.Context, p ListParams) (*ListResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}

	scope := sql.NullInt64{}
	if !p.Identity.Privileged() {
		scope = sql.NullInt64{Int64: p.Identity.ID, Valid: true}
	} else if p.UserID != 0 {
		scope = sql.NullInt64{Int64: p.UserID, Valid: true}
	}

	var status sql.NullString
	if p.Status != "" {
		normalized := NormalizeStatus(p.Status)
		if !normalized.Valid() {
			return nil, NewWalletRequestError(fmt.Errorf("%w: unknown status %q", ErrInvalidState, p.Status), "")
		}
		status = sql.NullString{String: string(normalized), Valid: true}
	}

	var method sql.NullString
	if p.PaymentMethod != "" {
		if !PaymentMethod(p.PaymentMethod).Valid() {
			return nil, ErrInvalidMethod
		}
		method = sql.NullString{String: p.PaymentMethod, Valid: true}
	}

	requests, err := e.store.ListWalletRequests(ctx, db.ListWalletRequestsParams{
		UserID:        scope,
		Status:        status,
		PaymentMethod: method,
		From:          p.From,
		To:            p.To,
		Limit:         p.PageSize,
		Offset:        (p.Page - 1) * p.PageSize,
	})
	if err != nil {
		return nil, err
	}

	total, err := e.store.CountWalletRequests(ctx, db.CountWalletRequestsParams{
		UserID:        scope,
		Status:        status,
		PaymentMethod: method,
		From:          p.From,
		To:            p.To,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Requests: requests,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

// Get fetches one request with the same ownership scoping as List.
func (e *Engine) Get(ctx context.Context, identity auth.Identity, id uuid.UUID) (*db.WalletRequest, error) {
	req, err := e.store.GetWalletRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewWalletRequestError(ErrRequestNotFound, id.String())
	} else if err != nil {
		return nil, err
	}
	if !identity.Privileged() && !identity.Owns(req.UserID) {
		return nil, NewWalletRequestError(ErrRequestNotFound, id.String())
	}
	return &req, nil
}
