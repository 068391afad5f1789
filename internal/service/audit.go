package service

import (
	"context"
	"log/slog"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/datatypes"
)

type auditRecorder interface {
	RecordAudit(ctx context.Context, e *models.AuditEntry) error
}

// audit writes an audit entry after the mutation committed. A failed write is
// logged and does not undo the mutation.
func audit(ctx context.Context, repo auditRecorder, log *slog.Logger, actor *models.User, action, targetType, targetID string, details map[string]interface{}) {
	entry := &models.AuditEntry{
		ActorID:    actor.ID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    datatypes.JSONMap(details),
	}
	if err := repo.RecordAudit(ctx, entry); err != nil {
		log.Error("audit write failed", "action", action, "target_id", targetID, "error", err)
	}
}
