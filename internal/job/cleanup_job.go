package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"book-talk-api/internal/repository"
)

// CleanupJob removes expired refresh tokens from the database
type CleanupJob struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(userRepo repository.UserRepository, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Run executes the cleanup job
func (j *CleanupJob) Run() {
	ctx := context.Background()

	deleted, err := j.userRepo.DeleteExpiredRefreshTokens(ctx, time.Now())
	if err != nil {
		j.logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
		return
	}

	if deleted > 0 {
		j.logger.Info("Deleted expired refresh tokens", zap.Int64("count", deleted))
	}
}

// Schedule registers the cleanup job on an hourly cron and starts the
// scheduler. The returned cron can be stopped on shutdown.
func Schedule(cleanup *CleanupJob, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddJob("@hourly", cleanup); err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("Cleanup job scheduled", zap.String("schedule", "@hourly"))

	return c, nil
}
