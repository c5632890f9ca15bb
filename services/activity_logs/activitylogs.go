package activitylogs

import (
	"context"
	"database/sql"
	"net"
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/sqlc-dev/pqtype"
)

// ActivityLog records who did what in the back office. Entries are
// written fire-and-forget by the middleware and read by admins.
type ActivityLog struct {
	store *db.Store
}

func NewActivityLog(store *db.Store) *ActivityLog {
	return &ActivityLog{
		store: store,
	}
}

type CreateParams struct {
	UserID     *int64
	Action     string
	EntityType string
	EntityID   string
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

func (a *ActivityLog) Create(ctx context.Context, params CreateParams) (db.ActivityLog, error) {
	return a.store.CreateActivityLog(ctx, db.CreateActivityLogParams{
		UserID:     toNullInt64(params.UserID),
		Action:     params.Action,
		EntityType: toNullString(params.EntityType),
		EntityID:   toNullString(params.EntityID),
		IpAddress:  toInet(params.IPAddress),
		UserAgent:  toNullString(params.UserAgent),
		CreatedAt:  params.CreatedAt,
	})
}

func (a *ActivityLog) GetByUser(ctx context.Context, userID int64, limit, offset int32) ([]db.ActivityLog, error) {
	return a.store.GetActivityLogsByUser(ctx, db.GetActivityLogsByUserParams{
		UserID: sql.NullInt64{Int64: userID, Valid: true},
		Limit:  limit,
		Offset: offset,
	})
}

func (a *ActivityLog) GetRecent(ctx context.Context, limit, offset int32) ([]db.ActivityLog, error) {
	return a.store.GetRecentActivityLogs(ctx, db.GetRecentActivityLogsParams{
		Limit:  limit,
		Offset: offset,
	})
}

func (a *ActivityLog) DeleteBefore(ctx context.Context, threshold time.Time) (int64, error) {
	return a.store.DeleteActivityLogsBefore(ctx, threshold)
}

func toNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toInet(ip string) pqtype.Inet {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return pqtype.Inet{Valid: false}
	}

	// Store as a CIDR with a full mask.
	var mask net.IPMask
	if parsedIP.To4() != nil {
		mask = net.CIDRMask(32, 32)
	} else {
		mask = net.CIDRMask(128, 128)
	}

	return pqtype.Inet{
		IPNet: net.IPNet{IP: parsedIP, Mask: mask},
		Valid: true,
	}
}
