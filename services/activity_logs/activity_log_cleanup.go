package activitylogs

import (
	"context"
	"time"
)

// Logs are kept for 90 days; the scheduler runs CleanupTask daily.
const (
	CleanupInterval = 24 * time.Hour
	retention       = 90 * 24 * time.Hour
)

// CleanupTask returns the function the task scheduler runs to prune
// aged-out audit entries.
func (a *ActivityLog) CleanupTask() func(context.Context) error {
	return func(ctx context.Context) error {
		threshold := time.Now().Add(-retention)
		_, err := a.DeleteBefore(ctx, threshold)
		return err
	}
}
