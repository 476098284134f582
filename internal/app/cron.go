package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aiinasia/core/internal/models"
	"github.com/aiinasia/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *cron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(cron.Job{
		Name:        "reconcile_stale_imports",
		Description: "Mark import batches abandoned by a crashed process as failed",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().Add(-2 * time.Hour)
			result := db.Model(&models.MigrationLogModel{}).
				Where("status = ? AND updated_at < ?", models.BatchInProgress, cutoff).
				Update("status", models.BatchCompletedWithErrors)
			if result.Error != nil {
				cronLogger.Warn("stale import reconciliation failed", zap.Error(result.Error))
				return result.Error
			}
			if result.RowsAffected > 0 {
				cronLogger.Info(fmt.Sprintf("reconciled %d stale import batches", result.RowsAffected))
			}
			return nil
		},
	})

	sched.Register(cron.Job{
		Name:        "cleanup_reading_history",
		Description: "Delete reading history older than 90 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -90)
			result := db.Unscoped().
				Where("created_at < ?", cutoff).
				Delete(&models.ReadingHistoryModel{})
			if result.Error != nil {
				cronLogger.Warn("reading history cleanup failed", zap.Error(result.Error))
				return result.Error
			}
			if result.RowsAffected > 0 {
				cronLogger.Info(fmt.Sprintf("deleted %d old reading history rows", result.RowsAffected))
			}
			return nil
		},
	})

	sched.Register(cron.Job{
		Name:        "prune_migration_logs",
		Description: "Remove rolled back import logs older than 180 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -180)
			result := db.Unscoped().
				Where("status = ? AND updated_at < ?", models.BatchRolledBack, cutoff).
				Delete(&models.MigrationLogModel{})
			if result.Error != nil {
				cronLogger.Warn("migration log pruning failed", zap.Error(result.Error))
				return result.Error
			}
			if result.RowsAffected > 0 {
				cronLogger.Info(fmt.Sprintf("pruned %d old migration logs", result.RowsAffected))
			}
			return nil
		},
	})

	sched.Register(cron.Job{
		Name:        "cleanup_spam_comments",
		Description: "Purge comments marked as spam more than 30 days ago",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -30)
			result := db.Unscoped().
				Where("state = ? AND updated_at < ?", models.CommentSpam, cutoff).
				Delete(&models.CommentModel{})
			if result.Error != nil {
				cronLogger.Warn("spam comment cleanup failed", zap.Error(result.Error))
				return result.Error
			}
			if result.RowsAffected > 0 {
				cronLogger.Info(fmt.Sprintf("purged %d spam comments", result.RowsAffected))
			}
			return nil
		},
	})
}
