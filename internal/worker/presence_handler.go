package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

// presenceStaleThreshold is how long a participant may go without a
// heartbeat before the sweep deactivates them. Clients heartbeat via
// cursor updates and edits, so two minutes covers several missed polls.
const presenceStaleThreshold = 2 * time.Minute

// PresenceSweepHandler processes the periodic presence sweep task.
type PresenceSweepHandler struct {
	syncService *service.SyncService
}

func NewPresenceSweepHandler(syncService *service.SyncService) *PresenceSweepHandler {
	if syncService == nil {
		panic("SyncService cannot be nil for PresenceSweepHandler")
	}
	return &PresenceSweepHandler{syncService: syncService}
}

// ProcessTask implements asynq.Handler.
func (h *PresenceSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithFields(logrus.Fields{
		"task_type": t.Type(),
	})
	logCtx.Debug("Processing presence sweep task...")

	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	swept, err := h.syncService.ExpireStalePresence(sweepCtx, presenceStaleThreshold)
	if err != nil {
		logCtx.WithError(err).Error("Presence sweep failed")
		return err
	}

	if swept > 0 {
		logCtx.WithField("deactivated", swept).Info("Presence sweep deactivated stale participants")
	} else {
		logCtx.Debug("Presence sweep found no stale participants")
	}
	return nil
}
