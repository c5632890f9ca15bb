package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/AgroVault/AgroVault-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrWarehouseNotFound = fmt.Errorf("warehouse not found")
	ErrInsufficientStock = fmt.Errorf("insufficient stock at source warehouse")
	ErrSameWarehouse     = fmt.Errorf("source and destination warehouse are the same")
	ErrInvalidQuantity   = fmt.Errorf("quantity must be a positive number")
)

// Store is the slice of the database the stock service needs. Tests run
// against an in-memory implementation; production uses the SQL-backed
// one below.
type Store interface {
	GetWarehouse(ctx context.Context, id int64) (db.Warehouse, error)
	DebitWarehouseStock(ctx context.Context, arg db.DebitWarehouseStockParams) (db.WarehouseStock, error)
	CreditWarehouseStock(ctx context.Context, arg db.CreditWarehouseStockParams) (db.WarehouseStock, error)
	CreateStockMovement(ctx context.Context, arg db.CreateStockMovementParams) (db.StockMovement, error)
	GetStockMovement(ctx context.Context, id uuid.UUID) (db.StockMovement, error)
	ListStockMovements(ctx context.Context, arg db.ListStockMovementsParams) ([]db.StockMovement, error)

	// ExecTx runs fn against a transactional view of the same store.
	// Implementations without transaction support return
	// db.ErrTxUnsupported without side effects.
	ExecTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	*db.Queries
	store *db.Store
}

// NewSQLStore adapts the shared db.Store to the service's Store interface.
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

type StockService struct {
	store  Store
	logger *logging.Logger
}

func NewStockService(store Store, logger *logging.Logger) *StockService {
	return &StockService{
		store:  store,
		logger: logger,
	}
}

type TransferParams struct {
	Commodity       string
	QuantityKg      decimal.Decimal
	FromWarehouseID int64
	ToWarehouseID   int64
	InitiatedBy     int64
}

// Transfer moves a commodity quantity between two warehouses. The debit
// and credit commit together with the movement record; the conditional
// debit guards against overdrawing the source. When the store cannot
// open a transaction the transfer runs as sequential conditional
// updates, compensated best-effort on a partial failure.
func (s *StockService) Transfer(ctx context.Context, p TransferParams) (*db.StockMovement, error) {
	if p.QuantityKg.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	if p.FromWarehouseID == p.ToWarehouseID {
		return nil, ErrSameWarehouse
	}

	var movement db.StockMovement
	err := s.store.ExecTx(ctx, func(q Store) error {
		return s.applyTransfer(ctx, q, p, &movement)
	})
	if errors.Is(err, db.ErrTxUnsupported) {
		s.logger.Warn(fmt.Sprintf("store cannot open a transaction for stock transfer %d->%d, applying sequentially", p.FromWarehouseID, p.ToWarehouseID))
		err = s.applyTransferDegraded(ctx, p, &movement)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("moved %s kg of %s from warehouse %d to %d", p.QuantityKg, p.Commodity, p.FromWarehouseID, p.ToWarehouseID))
	return &movement, nil
}

func (s *StockService) applyTransfer(ctx context.Context, q Store, p TransferParams, movement *db.StockMovement) error {
	if _, err := q.GetWarehouse(ctx, p.FromWarehouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWarehouseNotFound
		}
		return err
	}
	if _, err := q.GetWarehouse(ctx, p.ToWarehouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWarehouseNotFound
		}
		return err
	}

	if _, err := q.DebitWarehouseStock(ctx, db.DebitWarehouseStockParams{
		WarehouseID: p.FromWarehouseID,
		Commodity:   p.Commodity,
		QuantityKg:  p.QuantityKg.String(),
	}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInsufficientStock
		}
		return err
	}

	if _, err := q.CreditWarehouseStock(ctx, db.CreditWarehouseStockParams{
		WarehouseID: p.ToWarehouseID,
		Commodity:   p.Commodity,
		QuantityKg:  p.QuantityKg.String(),
	}); err != nil {
		return err
	}

	created, err := q.CreateStockMovement(ctx, db.CreateStockMovementParams{
		Commodity:       p.Commodity,
		QuantityKg:      p.QuantityKg.String(),
		FromWarehouseID: p.FromWarehouseID,
		ToWarehouseID:   p.ToWarehouseID,
		Status:          "completed",
		InitiatedBy:     p.InitiatedBy,
	})
	if err != nil {
		return err
	}
	*movement = created
	return nil
}

// applyTransferDegraded runs the transfer as sequential single-row
// conditional updates. The conditional debit of the source is the
// atomic linchpin; a credit or movement write that fails afterwards is
// compensated by re-crediting the source.
func (s *StockService) applyTransferDegraded(ctx context.Context, p TransferParams, movement *db.StockMovement) error {
	if _, err := s.store.GetWarehouse(ctx, p.FromWarehouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWarehouseNotFound
		}
		return err
	}
	if _, err := s.store.GetWarehouse(ctx, p.ToWarehouseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrWarehouseNotFound
		}
		return err
	}

	if _, err := s.store.DebitWarehouseStock(ctx, db.DebitWarehouseStockParams{
		WarehouseID: p.FromWarehouseID,
		Commodity:   p.Commodity,
		QuantityKg:  p.QuantityKg.String(),
	}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInsufficientStock
		}
		return err
	}

	if _, err := s.store.CreditWarehouseStock(ctx, db.CreditWarehouseStockParams{
		WarehouseID: p.ToWarehouseID,
		Commodity:   p.Commodity,
		QuantityKg:  p.QuantityKg.String(),
	}); err != nil {
		s.compensateSource(ctx, p)
		return err
	}

	created, err := s.store.CreateStockMovement(ctx, db.CreateStockMovementParams{
		Commodity:       p.Commodity,
		QuantityKg:      p.QuantityKg.String(),
		FromWarehouseID: p.FromWarehouseID,
		ToWarehouseID:   p.ToWarehouseID,
		Status:          "completed",
		InitiatedBy:     p.InitiatedBy,
	})
	if err != nil {
		if _, derr := s.store.DebitWarehouseStock(ctx, db.DebitWarehouseStockParams{
			WarehouseID: p.ToWarehouseID,
			Commodity:   p.Commodity,
			QuantityKg:  p.QuantityKg.String(),
		}); derr != nil {
			s.logger.Error(fmt.Sprintf("could not take back credit on warehouse %d after failed movement write: %v", p.ToWarehouseID, derr))
			return err
		}
		s.compensateSource(ctx, p)
		return err
	}
	*movement = created
	return nil
}

func (s *StockService) compensateSource(ctx context.Context, p TransferParams) {
	if _, err := s.store.CreditWarehouseStock(ctx, db.CreditWarehouseStockParams{
		WarehouseID: p.FromWarehouseID,
		Commodity:   p.Commodity,
		QuantityKg:  p.QuantityKg.String(),
	}); err != nil {
		s.logger.Error(fmt.Sprintf("could not re-credit warehouse %d after failed transfer: %v", p.FromWarehouseID, err))
	}
}

func (s *StockService) GetMovement(ctx context.Context, id uuid.UUID) (*db.StockMovement, error) {
	movement, err := s.store.GetStockMovement(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stock movement not found")
	} else if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (s *StockService) ListMovements(ctx context.Context, warehouseID int64, page, pageSize int32) ([]db.StockMovement, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.store.ListStockMovements(ctx, db.ListStockMovementsParams{
		WarehouseID: sql.NullInt64{Int64: warehouseID, Valid: warehouseID != 0},
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	})
}
