package store

import (
	"context"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/gorm"
)

/* ------------------ User CRUD ------------------ */

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Create(u).Error
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserWithEnrollments loads the user with every enrollment, its program and
// its responses.
func (s *Store) GetUserWithEnrollments(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).
		Preload("Enrollments", newestFirst).
		Preload("Enrollments.MentorshipProgram").
		Preload("Enrollments.Responses").
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserDetails loads the user with enrollments and the programs they created.
func (s *Store) GetUserDetails(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.DB.WithContext(ctx).
		Preload("Enrollments", newestFirst).
		Preload("Enrollments.MentorshipProgram").
		Preload("CreatedPrograms", newestFirst).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns users newest first, optionally restricted to one role.
func (s *Store) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	q := s.DB.WithContext(ctx).Order("created_at desc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var res []models.User
	if err := q.Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]models.User, error) {
	var res []models.User
	err := s.DB.WithContext(ctx).
		Preload("CreatedPrograms", newestFirst).
		Where("role = ?", models.RoleAdmin).
		Order("created_at desc").
		Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"role": role, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUser removes the user together with their enrollments, the programs
// they created (with everything hanging off them) and their refresh tokens.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.MentorshipProgram{}).Select("id").Where("created_by = ?", id)
		enrollments := tx.Model(&models.Enrollment{}).Select("id").
			Where("user_id = ? OR mentorship_program_id IN (?)", id, owned)

		if err := tx.Where("enrollment_id IN (?)", enrollments).Delete(&models.FormResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR mentorship_program_id IN (?)", id, owned).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mentorship_program_id IN (?)", owned).Delete(&models.FormField{}).Error; err != nil {
			return err
		}
		if err := tx.Where("created_by = ?", id).Delete(&models.MentorshipProgram{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IsEnrolledInProgramsOf reports whether the user applied to any program created by creatorID.
func (s *Store) IsEnrolledInProgramsOf(ctx context.Context, userID, creatorID string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Joins("JOIN mentorship_programs mp ON mp.id = enrollments.mentorship_program_id").
		Where("enrollments.user_id = ? AND mp.created_by = ?", userID, creatorID).
		Count(&n).Error
	return n > 0, err
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}
