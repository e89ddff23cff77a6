// internal/infrastructure/database/postgres/keepalive.go
package postgres

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// KeepAlive issues a periodic no-op query so hosting providers that
// close idle database connections keep the pool warm. It blocks until
// the context is cancelled and is meant to run in its own goroutine.
func (d *DB) KeepAlive(ctx context.Context, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.DB.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
				logger.WithError(err).Warn("database keep-alive query failed")
			}
		}
	}
}
