package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrTxUnsupported signals that the store cannot open a multi-statement
// transaction, e.g. when running through a statement-mode pooler. Callers
// that can degrade to sequential conditional updates should check for it
// with errors.Is.
var ErrTxUnsupported = errors.New("store does not support transactions")

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Store struct {
	*Queries
	DB *sql.DB

	disableTx bool
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB:      db,
		Queries: New(db),
	}
}

// NewStoreWithOptions disables multi-statement transactions when
// disableTx is set; ExecTx then returns ErrTxUnsupported without
// touching the database.
func NewStoreWithOptions(db *sql.DB, disableTx bool) *Store {
	return &Store{
		DB:        db,
		Queries:   New(db),
		disableTx: disableTx,
	}
}

func (s *Store) ExecTx(ctx context.Context, fq func(q *Queries) error) error {
	if s.disableTx {
		return ErrTxUnsupported
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTxUnsupported, err)
	}
	defer tx.Rollback()

	q := New(tx)
	err = fq(q)

	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil && txErr != sql.ErrTxDone {
			return fmt.Errorf("encountered rollback error: %v", txErr)
		}
		return err
	}

	return tx.Commit()
}
