package store

import (
	"context"
	"errors"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotEmpty is returned by Seed when users already exist and reset was not requested.
var ErrNotEmpty = errors.New("database already has users")

// Dataset is a full set of rows loaded in one go. Programs carry their
// FormFields and enrollments their Responses.
type Dataset struct {
	Users       []models.User
	Programs    []models.MentorshipProgram
	Enrollments []models.Enrollment
}

// Seed loads ds in a single transaction. With reset every domain row is
// deleted first, refresh tokens and audit entries included.
func (s *Store) Seed(ctx context.Context, ds *Dataset, reset bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := clearAll(tx); err != nil {
				return err
			}
		} else {
			var n int64
			if err := tx.Model(&models.User{}).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrNotEmpty
			}
		}

		if len(ds.Users) > 0 {
			if err := tx.Create(&ds.Users).Error; err != nil {
				return err
			}
		}
		var fields []models.FormField
		for i := range ds.Programs {
			p := &ds.Programs[i]
			if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
				return err
			}
			for j := range p.FormFields {
				p.FormFields[j].MentorshipProgramID = p.ID
			}
			fields = append(fields, p.FormFields...)
		}
		if len(fields) > 0 {
			if err := tx.Omit(clause.Associations).Create(&fields).Error; err != nil {
				return err
			}
		}
		var responses []models.FormResponse
		for i := range ds.Enrollments {
			e := &ds.Enrollments[i]
			if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
				return err
			}
			for j := range e.Responses {
				e.Responses[j].EnrollmentID = e.ID
			}
			responses = append(responses, e.Responses...)
		}
		if len(responses) > 0 {
			return tx.Omit(clause.Associations).Create(&responses).Error
		}
		return nil
	})
}

func clearAll(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []interface{}{
		&models.FormResponse{},
		&models.Enrollment{},
		&models.FormField{},
		&models.MentorshipProgram{},
		&models.RefreshToken{},
		&models.AuditEntry{},
		&models.User{},
	} {
		if err := all.Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
