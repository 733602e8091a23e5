package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartStaleShareCleaner clears shared_password_id references whose
// password row no longer exists. Share references are not enforced by a
// foreign key, so a deleted password leaves stale pointers behind until
// the next sweep.
func StartStaleShareCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    UPDATE group_members
                       SET shared_password_id = NULL
                     WHERE shared_password_id IS NOT NULL
                       AND NOT EXISTS (
                           SELECT 1 FROM passwords
                            WHERE passwords.password_id = group_members.shared_password_id
                       )
                `)
				if err != nil {
					log.Error("failed to clean stale share references", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned stale share references", zap.Int64("cleared", rows))
				}
			}
		}
	}()
}
