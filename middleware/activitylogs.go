package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	activitylogs "github.com/AgroVault/AgroVault-Backend/services/activity_logs"
	"github.com/gin-gonic/gin"
)

type ActivityLogMiddleware struct {
	service *activitylogs.ActivityLog
}

func NewActivityLogMiddleware(service *activitylogs.ActivityLog) *ActivityLogMiddleware {
	return &ActivityLogMiddleware{
		service: service,
	}
}

// ActivityLogger records every mutating request after it has been
// handled. Reads are not logged; neither are failed requests, which
// already land in the request log.
func (a *ActivityLogMiddleware) ActivityLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !shouldLog(c.Request.Method) || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		var userID *int64
		if uid, exists := c.Get("user_id"); exists {
			if u, ok := uid.(int64); ok {
				userID = &u
			}
		}

		action := describeAction(c, userID)
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()
		entityID := c.Param("id")
		entityType := c.FullPath()

		// Write in the background so a slow audit insert never holds
		// up the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_, _ = a.service.Create(ctx, activitylogs.CreateParams{
				UserID:     userID,
				Action:     action,
				EntityType: entityType,
				EntityID:   entityID,
				IPAddress:  ip,
				UserAgent:  userAgent,
				CreatedAt:  time.Now(),
			})
		}()
	}
}

func shouldLog(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func describeAction(c *gin.Context, userID *int64) string {
	if userID == nil {
		return fmt.Sprintf("unauthenticated %s %s", c.Request.Method, c.FullPath())
	}
	return fmt.Sprintf("user %d: %s %s", *userID, c.Request.Method, c.FullPath())
}
