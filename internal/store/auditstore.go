package store

import (
	"context"

	"github.com/madhava-poojari/mentorship-api/internal/models"
)

func (s *Store) RecordAudit(ctx context.Context, e *models.AuditEntry) error {
	return s.DB.WithContext(ctx).Create(e).Error
}

// ListAudit returns the most recent entries first.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	var res []models.AuditEntry
	if err := s.DB.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}
