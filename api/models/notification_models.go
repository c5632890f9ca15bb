package models

import (
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
)

type NotificationResponse struct {
	ID        int32     `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToNotificationResponseList(notifications []db.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = &NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
