package store

import (
	"context"
	"database/sql"
	"time"
)

type Notification struct {
	ID        int32
	UserID    sql.NullInt64
	Message   string
	Read      bool
	CreatedAt time.Time
}

const createNotification = `
INSERT INTO notifications (user_id, message)
VALUES ($1, $2)
RETURNING id, user_id, message, read, created_at
`

type CreateNotificationParams struct {
	UserID  sql.NullInt64
	Message string
}

func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error) {
	row := q.db.QueryRowContext(ctx, createNotification, arg.UserID, arg.Message)
	var i Notification
	err := row.Scan(&i.ID, &i.UserID, &i.Message, &i.Read, &i.CreatedAt)
	return i, err
}

const listNotificationsByUser = `
SELECT id, user_id, message, read, created_at
FROM notifications WHERE user_id = $1 ORDER BY created_at DESC
`

func (q *Queries) ListNotificationsByUser(ctx context.Context, userID sql.NullInt64) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, listNotificationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Notification
	for rows.Next() {
		var i Notification
		if err := rows.Scan(&i.ID, &i.UserID, &i.Message, &i.Read, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const markNotificationRead = `
UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2
`

type MarkNotificationReadParams struct {
	ID     int32
	UserID sql.NullInt64
}

func (q *Queries) MarkNotificationRead(ctx context.Context, arg MarkNotificationReadParams) error {
	_, err := q.db.ExecContext(ctx, markNotificationRead, arg.ID, arg.UserID)
	return err
}

const deleteNotification = `
DELETE FROM notifications WHERE id = $1 AND user_id = $2
`

type DeleteNotificationParams struct {
	ID     int32
	UserID sql.NullInt64
}

func (q *Queries) DeleteNotification(ctx context.Context, arg DeleteNotificationParams) error {
	_, err := q.db.ExecContext(ctx, deleteNotification, arg.ID, arg.UserID)
	return err
}
