package models

import (
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
)

type ActivityLogResponse struct {
	ID         int64     `json:"id"`
	UserID     ID        `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToActivityLogResponseList(logs []db.ActivityLog) []*ActivityLogResponse {
	out := make([]*ActivityLogResponse, len(logs))
	for i, l := range logs {
		resp := &ActivityLogResponse{
			ID:         l.ID,
			UserID:     ID(l.UserID.Int64),
			Action:     l.Action,
			EntityType: l.EntityType.String,
			EntityID:   l.EntityID.String,
			UserAgent:  l.UserAgent.String,
			CreatedAt:  l.CreatedAt,
		}
		if l.IpAddress.Valid {
			resp.IPAddress = l.IpAddress.IPNet.IP.String()
		}
		out[i] = resp
	}
	return out
}
