package store

import (
	"context"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/gorm"
)

func (s *Store) ListFormFields(ctx context.Context, programID string) ([]models.FormField, error) {
	var res []models.FormField
	if err := s.DB.WithContext(ctx).Where("mentorship_program_id = ?", programID).Order(fieldOrder).Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// GetFormField loads the field with its program, which callers need for ownership checks.
func (s *Store) GetFormField(ctx context.Context, id string) (*models.FormField, error) {
	var f models.FormField
	if err := s.DB.WithContext(ctx).Preload("MentorshipProgram").First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) CreateFormFields(ctx context.Context, fields []models.FormField) error {
	if len(fields) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&fields).Error
}

// UpdateFormField writes every column of the field, so cleared options are persisted too.
func (s *Store) UpdateFormField(ctx context.Context, f *models.FormField) error {
	return s.DB.WithContext(ctx).Model(&models.FormField{}).Where("id = ?", f.ID).
		Select("title", "description", "field_type", "options", "is_required", "order", "updated_at").
		Updates(f).Error
}

func (s *Store) DeleteFormField(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_field_id = ?", id).Delete(&models.FormResponse{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.FormField{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
