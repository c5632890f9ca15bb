package walletrequest

import (
	"context"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/google/uuid"
)

// Store is the slice of the database the engine needs. Tests run the
// engine against an in-memory implementation; production uses the
// SQL-backed one below.
type Store interface {
	GetWalletRequest(ctx context.Context, id uuid.UUID) (db.WalletRequest, error)
	CreateWalletRequest(ctx context.Context, arg db.CreateWalletRequestParams) (db.WalletRequest, error)
	ListWalletRequests(ctx context.Context, arg db.ListWalletRequestsParams) ([]db.WalletRequest, error)
	CountWalletRequests(ctx context.Context, arg db.CountWalletRequestsParams) (int64, error)
	MarkWalletRequestApproved(ctx context.Context, arg db.MarkWalletRequestApprovedParams) (db.WalletRequest, error)
	MarkWalletRequestDeclined(ctx context.Context, arg db.MarkWalletRequestDeclinedParams) (db.WalletRequest, error)
	MarkWalletRequestConfirmed(ctx context.Context, id uuid.UUID) (db.WalletRequest, error)
	RevertWalletRequestToPending(ctx context.Context, id uuid.UUID) error

	GetAppWallet(ctx context.Context) (db.Wallet, error)
	DebitAppWallet(ctx context.Context, amount string) (db.Wallet, error)
	CreditAppWallet(ctx context.Context, amount string) (db.Wallet, error)
	CreditUserBalance(ctx context.Context, arg db.CreditUserBalanceParams) (string, error)

	// ExecTx runs fn against a transactional view of the same store.
	// Implementations without transaction support return
	// db.ErrTxUnsupported without side effects.
	ExecTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	*db.Queries
	store *db.Store
}

// NewSQLStore adapts the shared db.Store to the engine's Store interface.
func NewSQLStore(store *db.Store) Store {
	return &sqlStore{
		Queries: store.Queries,
		store:   store,
	}
}

func (s *sqlStore) ExecTx(ctx context.Context, fn func(Store) error) error {
	return s.store.ExecTx(ctx, func(q *db.Queries) error {
		return fn(&sqlStore{Queries: q, store: s.store})
	})
}
