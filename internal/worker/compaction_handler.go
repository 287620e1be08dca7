package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

// changeRetention is how long change-log entries are kept. Clients only
// poll for recent changes, so everything older is dead weight.
const changeRetention = 24 * time.Hour

// ChangeCompactionHandler processes the periodic change-log compaction
// task.
type ChangeCompactionHandler struct {
	syncService *service.SyncService
}

func NewChangeCompactionHandler(syncService *service.SyncService) *ChangeCompactionHandler {
	if syncService == nil {
		panic("SyncService cannot be nil for ChangeCompactionHandler")
	}
	return &ChangeCompactionHandler{syncService: syncService}
}

// ProcessTask implements asynq.Handler.
func (h *ChangeCompactionHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithFields(logrus.Fields{
		"task_type": t.Type(),
	})
	logCtx.Debug("Processing change compaction task...")

	compactCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	deleted, err := h.syncService.CompactChangeLog(compactCtx, changeRetention)
	if err != nil {
		logCtx.WithError(err).Error("Change compaction failed")
		return err
	}

	if deleted > 0 {
		logCtx.WithField("deleted", deleted).Info("Change compaction removed old entries")
	} else {
		logCtx.Debug("Change compaction found nothing to delete")
	}
	return nil
}
