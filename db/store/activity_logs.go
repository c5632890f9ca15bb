package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

type ActivityLog struct {
	ID         int64
	UserID     sql.NullInt64
	Action     string
	EntityType sql.NullString
	EntityID   sql.NullString
	IpAddress  pqtype.Inet
	UserAgent  sql.NullString
	CreatedAt  time.Time
}

const activityLogColumns = `id, user_id, action, entity_type, entity_id, ip_address, user_agent, created_at`

const createActivityLog = `
INSERT INTO activity_logs (user_id, action, entity_type, entity_id, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + activityLogColumns

type CreateActivityLogParams struct {
	UserID     sql.NullInt64
	Action     string
	EntityType sql.NullString
	EntityID   sql.NullString
	IpAddress  pqtype.Inet
	UserAgent  sql.NullString
	CreatedAt  time.Time
}

func (q *Queries) CreateActivityLog(ctx context.Context, arg CreateActivityLogParams) (ActivityLog, error) {
	row := q.db.QueryRowContext(ctx, createActivityLog,
		arg.UserID,
		arg.Action,
		arg.EntityType,
		arg.EntityID,
		arg.IpAddress,
		arg.UserAgent,
		arg.CreatedAt,
	)
	return scanActivityLog(row)
}

const getActivityLogsByUser = `
SELECT ` + activityLogColumns + `
FROM activity_logs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type GetActivityLogsByUserParams struct {
	UserID sql.NullInt64
	Limit  int32
	Offset int32
}

func (q *Queries) GetActivityLogsByUser(ctx context.Context, arg GetActivityLogsByUserParams) ([]ActivityLog, error) {
	rows, err := q.db.QueryContext(ctx, getActivityLogsByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ActivityLog
	for rows.Next() {
		var i ActivityLog
		if err := rows.Scan(&i.ID, &i.UserID, &i.Action, &i.EntityType, &i.EntityID, &i.IpAddress, &i.UserAgent, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getRecentActivityLogs = `
SELECT ` + activityLogColumns + `
FROM activity_logs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

type GetRecentActivityLogsParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) GetRecentActivityLogs(ctx context.Context, arg GetRecentActivityLogsParams) ([]ActivityLog, error) {
	rows, err := q.db.QueryContext(ctx, getRecentActivityLogs, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ActivityLog
	for rows.Next() {
		var i ActivityLog
		if err := rows.Scan(&i.ID, &i.UserID, &i.Action, &i.EntityType, &i.EntityID, &i.IpAddress, &i.UserAgent, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteActivityLogsBefore = `
DELETE FROM activity_logs WHERE created_at < $1
`

func (q *Queries) DeleteActivityLogsBefore(ctx context.Context, threshold time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteActivityLogsBefore, threshold)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanActivityLog(row *sql.Row) (ActivityLog, error) {
	var i ActivityLog
	err := row.Scan(&i.ID, &i.UserID, &i.Action, &i.EntityType, &i.EntityID, &i.IpAddress, &i.UserAgent, &i.CreatedAt)
	return i, err
}
