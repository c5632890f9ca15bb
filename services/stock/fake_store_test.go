package stock

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStockStore is an in-memory Store with the same conditional-debit
// semantics as the SQL queries. ExecTx snapshots state and restores it
// when fn fails, mirroring a rollback.
type fakeStockStore struct {
	mu sync.Mutex

	warehouses map[int64]db.Warehouse
	stock      map[string]decimal.Decimal
	movements  map[uuid.UUID]db.StockMovement

	txUnsupported bool
	creditErr     map[int64]error
	movementErr   error

	txAttempts int
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{
		warehouses: make(map[int64]db.Warehouse),
		stock:      make(map[string]decimal.Decimal),
		movements:  make(map[uuid.UUID]db.StockMovement),
		creditErr:  make(map[int64]error),
	}
}

func stockKey(warehouseID int64, commodity string) string {
	return fmt.Sprintf("%d/%s", warehouseID, commodity)
}

func (f *fakeStockStore) seedWarehouse(id int64, name string) {
	f.warehouses[id] = db.Warehouse{
		ID:           id,
		Name:         name,
		Location:     "Tamale",
		CapacityTons: "500",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func (f *fakeStockStore) seedStock(warehouseID int64, commodity, quantity string) {
	f.stock[stockKey(warehouseID, commodity)] = decimal.RequireFromString(quantity)
}

func (f *fakeStockStore) quantity(warehouseID int64, commodity string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[stockKey(warehouseID, commodity)].String()
}

func (f *fakeStockStore) GetWarehouse(ctx context.Context, id int64) (db.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.warehouses[id]
	if !ok {
		return db.Warehouse{}, sql.ErrNoRows
	}
	return w, nil
}

func (f *fakeStockStore) DebitWarehouseStock(ctx context.Context, arg db.DebitWarehouseStockParams) (db.WarehouseStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := stockKey(arg.WarehouseID, arg.Commodity)
	held := f.stock[key]
	amount := decimal.RequireFromString(arg.QuantityKg)
	if held.LessThan(amount) {
		return db.WarehouseStock{}, sql.ErrNoRows
	}
	f.stock[key] = held.Sub(amount)
	return db.WarehouseStock{
		WarehouseID: arg.WarehouseID,
		Commodity:   arg.Commodity,
		QuantityKg:  f.stock[key].String(),
		UpdatedAt:   time.Now(),
	}, nil
}

func (f *fakeStockStore) CreditWarehouseStock(ctx context.Context, arg db.CreditWarehouseStockParams) (db.WarehouseStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.creditErr[arg.WarehouseID]; err != nil {
		return db.WarehouseStock{}, err
	}
	key := stockKey(arg.WarehouseID, arg.Commodity)
	f.stock[key] = f.stock[key].Add(decimal.RequireFromString(arg.QuantityKg))
	return db.WarehouseStock{
		WarehouseID: arg.WarehouseID,
		Commodity:   arg.Commodity,
		QuantityKg:  f.stock[key].String(),
		UpdatedAt:   time.Now(),
	}, nil
}

func (f *fakeStockStore) CreateStockMovement(ctx context.Context, arg db.CreateStockMovementParams) (db.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.movementErr != nil {
		return db.StockMovement{}, f.movementErr
	}
	m := db.StockMovement{
		ID:              uuid.New(),
		Commodity:       arg.Commodity,
		QuantityKg:      arg.QuantityKg,
		FromWarehouseID: arg.FromWarehouseID,
		ToWarehouseID:   arg.ToWarehouseID,
		Status:          arg.Status,
		InitiatedBy:     arg.InitiatedBy,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.movements[m.ID] = m
	return m, nil
}

func (f *fakeStockStore) GetStockMovement(ctx context.Context, id uuid.UUID) (db.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movements[id]
	if !ok {
		return db.StockMovement{}, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeStockStore) ListStockMovements(ctx context.Context, arg db.ListStockMovementsParams) ([]db.StockMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []db.StockMovement
	for _, m := range f.movements {
		if arg.WarehouseID.Valid && m.FromWarehouseID != arg.WarehouseID.Int64 && m.ToWarehouseID != arg.WarehouseID.Int64 {
			continue
		}
		items = append(items, m)
	}
	return items, nil
}

func (f *fakeStockStore) ExecTx(ctx context.Context, fn func(Store) error) error {
	f.mu.Lock()
	f.txAttempts++
	if f.txUnsupported {
		f.mu.Unlock()
		return db.ErrTxUnsupported
	}
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

type stockSnapshot struct {
	stock     map[string]decimal.Decimal
	movements map[uuid.UUID]db.StockMovement
}

func (f *fakeStockStore) snapshot() stockSnapshot {
	s := stockSnapshot{
		stock:     make(map[string]decimal.Decimal, len(f.stock)),
		movements: make(map[uuid.UUID]db.StockMovement, len(f.movements)),
	}
	for k, v := range f.stock {
		s.stock[k] = v
	}
	for k, v := range f.movements {
		s.movements[k] = v
	}
	return s
}

func (f *fakeStockStore) restore(s stockSnapshot) {
	f.stock = s.stock
	f.movements = s.movements
}
