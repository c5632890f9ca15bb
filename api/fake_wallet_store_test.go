package api

import (
	"context"
	"database/sql"
	"sync"
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/AgroVault/AgroVault-Backend/services/walletrequest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeWalletStore backs the handler tests with the same conditional
// update semantics the SQL queries have, so the engine behaves as it
// would against Postgres.
type fakeWalletStore struct {
	mu sync.Mutex

	requests     map[uuid.UUID]db.WalletRequest
	appWallet    *db.Wallet
	userBalances map[int64]decimal.Decimal
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{
		requests:     make(map[uuid.UUID]db.WalletRequest),
		userBalances: make(map[int64]decimal.Decimal),
	}
}

func (f *fakeWalletStore) seedAppWallet(balance string) {
	f.appWallet = &db.Wallet{
		ID:           uuid.New(),
		Name:         "app",
		Type:         "system",
		Currency:     "GHS",
		Balance:      balance,
		SystemWallet: true,
	}
}

func (f *fakeWalletStore) seedRequest(userID int64, amount string, status walletrequest.Status) db.WalletRequest {
	req := db.WalletRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		Status:    string(status),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.requests[req.ID] = req
	return req
}

func (f *fakeWalletStore) GetWalletRequest(ctx context.Context, id uuid.UUID) (db.WalletRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return db.WalletRequest{}, sql.ErrNoRows
	}
	return req, nil
}

func (f *fakeWalletStore) CreateWalletRequest(ctx context.Context, arg db.CreateWalletRequestParams) (db.WalletRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req := db.WalletRequest{
		ID:            uuid.New(),
		UserID:        arg.UserID,
		Amount:        arg.Amount,
		PaymentMethod: arg.PaymentMethod,
		Provider:      arg.Provider,
		PhoneNumber:   arg.PhoneNumber,
		BankName:      arg.BankName,
		BranchName:    arg.BranchName,
		Reason:        arg.Reason,
		Status:        arg.Status,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeWalletStore) ListWalletRequests(ctx context.Context, arg db.ListWalletRequestsParams) ([]db.WalletRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []db.WalletRequest
	for _, req := range f.requests {
		if f.matches(req, arg.UserID, arg.Status, arg.PaymentMethod) {
			items = append(items, req)
		}
	}
	return items, nil
}

func (f *fakeWalletStore) CountWalletRequests(ctx context.Context, arg db.CountWalletRequestsParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, req := range f.requests {
		if f.matches(req, arg.UserID, arg.Status, arg.PaymentMethod) {
			count++
		}
	}
	return count, nil
}

func (f *fakeWalletStore) matches(req db.WalletRequest, userID sql.NullInt64, status, method sql.NullString) bool {
	if userID.Valid && req.UserID != userID.Int64 {
		return false
	}
	if status.Valid && req.Status != status.String {
		return false
	}
	if method.Valid && (!req.PaymentMethod.Valid || req.PaymentMethod.String != method.String) {
		return false
	}
	return true
}

func (f *fakeWalletStore) MarkWalletRequestApproved(ctx context.Context, arg db.MarkWalletRequestApprovedParams) (db.WalletRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[arg.ID]
	if !ok || req.Status != string(walletrequest.StatusPending) {
		return db.WalletRequest{}, sql.ErrNoRows
	}
	req.Status = string(walletrequest.StatusApproved)
	req.ReviewedBy = sql.NullInt64{Int64: arg.ReviewedBy, Valid: true}
	req.ReviewedAt = sql.NullTime{Time: time.Now(), Valid: true}
	if arg.PaymentMethod.Valid {
		req.PaymentMethod = arg.PaymentMethod
	}
	if arg.Provider.Valid {
		req.Provider = arg.Provider
	}
	if arg.PhoneNumber.Valid {
		req.PhoneNumber = arg.PhoneNumber
	}
	if arg.BankName.Valid {
		req.BankName = arg.BankName
	}
	if arg.BranchName.Valid {
		req.BranchName = arg.BranchName
	}
	req.UpdatedAt = time.Now()
	f.requests[arg.ID] = req
	return req, nil
}

func (f *fakeWalletStore) MarkWalletRequestDeclined(ctx context.Context, arg db.MarkWalletRequestDeclinedParams) (db.WalletRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[arg.ID]
	if !ok || req.Status != string(walletrequest.StatusPending) {
		return db.WalletRequest{}, sql.ErrNoRows
	}
	req.Status = string(walletrequest.StatusDeclined)
	req.ReviewedBy = sql.NullInt64{Int64: arg.ReviewedBy, Valid: true}
	req.ReviewedAt = sql.NullTime{Time: time.Now(), Valid: true}
	req.RejectionReason = sql.NullString{String: arg.RejectionReason, Valid: true}
	req.UpdatedAt = time.Now()
	f.requests[arg.ID] = req
	return req, nil
}

func (f *fakeWalletStore) MarkWalletRequestConfirmed(ctx context.Context, id uuid.UUID) (db.WalletRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != string(walletrequest.StatusApproved) {
		return db.WalletRequest{}, sql.ErrNoRows
	}
	req.Status = string(walletrequest.StatusSuccessful)
	req.ConfirmedAt = sql.NullTime{Time: time.Now(), Valid: true}
	req.UpdatedAt = time.Now()
	f.requests[id] = req
	return req, nil
}

func (f *fakeWalletStore) RevertWalletRequestToPending(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != string(walletrequest.StatusApproved) {
		return nil
	}
	req.Status = string(walletrequest.StatusPending)
	req.ReviewedBy = sql.NullInt64{}
	req.ReviewedAt = sql.NullTime{}
	f.requests[id] = req
	return nil
}

func (f *fakeWalletStore) GetAppWallet(ctx context.Context) (db.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appWallet == nil {
		return db.Wallet{}, sql.ErrNoRows
	}
	return *f.appWallet, nil
}

func (f *fakeWalletStore) DebitAppWallet(ctx context.Context, amount string) (db.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appWallet == nil {
		return db.Wallet{}, sql.ErrNoRows
	}
	balance := decimal.RequireFromString(f.appWallet.Balance)
	amt := decimal.RequireFromString(amount)
	if balance.LessThan(amt) {
		return db.Wallet{}, sql.ErrNoRows
	}
	f.appWallet.Balance = balance.Sub(amt).String()
	return *f.appWallet, nil
}

func (f *fakeWalletStore) CreditAppWallet(ctx context.Context, amount string) (db.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appWallet == nil {
		return db.Wallet{}, sql.ErrNoRows
	}
	balance := decimal.RequireFromString(f.appWallet.Balance)
	f.appWallet.Balance = balance.Add(decimal.RequireFromString(amount)).String()
	return *f.appWallet, nil
}

func (f *fakeWalletStore) CreditUserBalance(ctx context.Context, arg db.CreditUserBalanceParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance := f.userBalances[arg.ID].Add(decimal.RequireFromString(arg.Amount))
	f.userBalances[arg.ID] = balance
	return balance.String(), nil
}

func (f *fakeWalletStore) ExecTx(ctx context.Context, fn func(walletrequest.Store) error) error {
	f.mu.Lock()
	snapshot := f.snapshot()
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.restore(snapshot)
		f.mu.Unlock()
		return err
	}
	return nil
}

type walletSnapshot struct {
	requests     map[uuid.UUID]db.WalletRequest
	appWallet    *db.Wallet
	userBalances map[int64]decimal.Decimal
}

func (f *fakeWalletStore) snapshot() walletSnapshot {
	s := walletSnapshot{
		requests:     make(map[uuid.UUID]db.WalletRequest, len(f.requests)),
		userBalances: make(map[int64]decimal.Decimal, len(f.userBalances)),
	}
	for k, v := range f.requests {
		s.requests[k] = v
	}
	for k, v := range f.userBalances {
		s.userBalances[k] = v
	}
	if f.appWallet != nil {
		w := *f.appWallet
		s.appWallet = &w
	}
	return s
}

func (f *fakeWalletStore) restore(s walletSnapshot) {
	f.requests = s.requests
	f.userBalances = s.userBalances
	f.appWallet = s.appWallet
}

func (f *fakeWalletStore) userBalance(id int64) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userBalances[id]
}

func (f *fakeWalletStore) appBalance() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appWallet.Balance
}

func (f *fakeWalletStore) request(id uuid.UUID) db.WalletRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[id]
}
