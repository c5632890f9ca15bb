package service

import (
	"context"
	"database/sql"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
)

type Notification struct {
	store *db.Store
}

func NewNotificationService(store *db.Store) *Notification {
	return &Notification{store}
}

func (n *Notification) Create(ctx context.Context, userID int64, message string) (*db.Notification, error) {
	nots, err := n.store.CreateNotification(ctx, db.CreateNotificationParams{
		UserID:  sql.NullInt64{Int64: userID, Valid: true},
		Message: message,
	})

	if err != nil {
		return nil, err
	}
	return &nots, nil
}

func (n *Notification) Get(ctx context.Context, userID int64) ([]db.Notification, error) {
	nots, err := n.store.ListNotificationsByUser(ctx, sql.NullInt64{Int64: userID, Valid: true})

	if err != nil {
		return nil, err
	}
	return nots, nil
}

func (n *Notification) MarkRead(ctx context.Context, userID int64, id int32) error {
	return n.store.MarkNotificationRead(ctx, db.MarkNotificationReadParams{
		UserID: sql.NullInt64{Int64: userID, Valid: true},
		ID:     id,
	})
}

func (n *Notification) Delete(ctx context.Context, userID int64, id int32) error {
	err := n.store.DeleteNotification(ctx, db.DeleteNotificationParams{
		UserID: sql.NullInt64{Int64: userID, Valid: true},
		ID:     id,
	})

	if err != nil {
		return err
	}
	return nil
}
