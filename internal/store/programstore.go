package store

import (
	"context"
	"fmt"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// "order" is a reserved word, so it is quoted.
const fieldOrder = `"order" asc, created_at asc`

type ProgramFilter struct {
	Status    models.ProgramStatus
	CreatedBy string
}

func orderedFields(db *gorm.DB) *gorm.DB {
	return db.Order(fieldOrder)
}

// CreateProgram inserts the program and its initial form fields in one transaction.
func (s *Store) CreateProgram(ctx context.Context, p *models.MentorshipProgram, fields []models.FormField) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		for i := range fields {
			fields[i].MentorshipProgramID = p.ID
		}
		if err := tx.Create(&fields).Error; err != nil {
			return err
		}
		p.FormFields = fields
		return nil
	})
}

// GetProgram loads a program with its creator, ordered form fields and enrollment counts.
func (s *Store) GetProgram(ctx context.Context, id string) (*models.MentorshipProgram, error) {
	var p models.MentorshipProgram
	err := s.DB.WithContext(ctx).
		Preload("Creator").
		Preload("FormFields", orderedFields).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	list := []models.MentorshipProgram{p}
	if err := s.fillCounts(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// ListPrograms returns programs newest first with creator and enrollment counts.
func (s *Store) ListPrograms(ctx context.Context, f ProgramFilter) ([]models.MentorshipProgram, error) {
	q := s.DB.WithContext(ctx).Preload("Creator").Order("created_at desc")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}
	var res []models.MentorshipProgram
	if err := q.Find(&res).Error; err != nil {
		return nil, err
	}
	if err := s.fillCounts(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) fillCounts(ctx context.Context, programs []models.MentorshipProgram) error {
	if len(programs) == 0 {
		return nil
	}
	ids := make([]string, len(programs))
	for i, p := range programs {
		ids[i] = p.ID
	}
	var rows []struct {
		MentorshipProgramID string
		Status              models.EnrollmentStatus
		N                   int64
	}
	err := s.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Select("mentorship_program_id, status, count(*) as n").
		Where("mentorship_program_id IN ?", ids).
		Group("mentorship_program_id, status").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count enrollments: %w", err)
	}
	idx := make(map[string]int, len(programs))
	for i, p := range programs {
		idx[p.ID] = i
	}
	for _, r := range rows {
		i, ok := idx[r.MentorshipProgramID]
		if !ok {
			continue
		}
		programs[i].EnrollmentCount += r.N
		if r.Status == models.EnrollmentAccepted {
			programs[i].AcceptedCount += r.N
		}
	}
	return nil
}

// UpdateProgram applies column updates. The program row is locked so a new
// max_participants can be checked against the accepted count.
func (s *Store) UpdateProgram(ctx context.Context, id string, updates map[string]interface{}) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProgram(tx, id)
		if err != nil {
			return err
		}
		if v, ok := updates["max_participants"]; ok {
			limit, _ := v.(int)
			accepted, err := countAccepted(tx, p.ID)
			if err != nil {
				return err
			}
			if int64(limit) < accepted {
				return fmt.Errorf("%w: %d accepted", ErrCapacityBelowAccepted, accepted)
			}
		}
		updates["updated_at"] = time.Now()
		return tx.Model(&models.MentorshipProgram{}).Where("id = ?", id).Updates(updates).Error
	})
}

// DeleteProgram removes the program with its fields, enrollments and responses.
func (s *Store) DeleteProgram(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollments := tx.Model(&models.Enrollment{}).Select("id").Where("mentorship_program_id = ?", id)
		if err := tx.Where("enrollment_id IN (?)", enrollments).Delete(&models.FormResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mentorship_program_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mentorship_program_id = ?", id).Delete(&models.FormField{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.MentorshipProgram{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func lockProgram(tx *gorm.DB, id string) (*models.MentorshipProgram, error) {
	var p models.MentorshipProgram
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func countAccepted(tx *gorm.DB, programID string) (int64, error) {
	var n int64
	err := tx.Model(&models.Enrollment{}).
		Where("mentorship_program_id = ? AND status = ?", programID, models.EnrollmentAccepted).
		Count(&n).Error
	return n, err
}
