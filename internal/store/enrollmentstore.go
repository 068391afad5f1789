package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentFilter struct {
	UserID    string
	ProgramID string
	Status    models.EnrollmentStatus
	// ProgramCreator restricts results to programs created by this user.
	ProgramCreator string
	// WithProgramDetails also loads the program's creator and form fields.
	WithProgramDetails bool
}

func (s *Store) CountEnrollments(ctx context.Context, programID string, status models.EnrollmentStatus) (int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Enrollment{}).Where("mentorship_program_id = ?", programID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (s *Store) FindEnrollment(ctx context.Context, userID, programID string) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND mentorship_program_id = ?", userID, programID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEnrollment inserts the enrollment and its responses in one transaction.
func (s *Store) CreateEnrollment(ctx context.Context, e *models.Enrollment, responses []models.FormResponse) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return err
		}
		if len(responses) == 0 {
			return nil
		}
		for i := range responses {
			responses[i].EnrollmentID = e.ID
		}
		if err := tx.Omit(clause.Associations).Create(&responses).Error; err != nil {
			return err
		}
		e.Responses = responses
		return nil
	})
}

// GetEnrollment loads an enrollment with its user, program and answered fields.
func (s *Store) GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("MentorshipProgram").
		Preload("Responses.FormField").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEnrollments(ctx context.Context, f EnrollmentFilter) ([]models.Enrollment, error) {
	q := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Responses.FormField")
	if f.WithProgramDetails {
		q = q.Preload("MentorshipProgram.Creator").Preload("MentorshipProgram.FormFields", orderedFields)
	} else {
		q = q.Preload("MentorshipProgram")
	}
	if f.UserID != "" {
		q = q.Where("enrollments.user_id = ?", f.UserID)
	}
	if f.ProgramID != "" {
		q = q.Where("enrollments.mentorship_program_id = ?", f.ProgramID)
	}
	if f.Status != "" {
		q = q.Where("enrollments.status = ?", f.Status)
	}
	if f.ProgramCreator != "" {
		owned := s.DB.Model(&models.MentorshipProgram{}).Select("id").Where("created_by = ?", f.ProgramCreator)
		q = q.Where("enrollments.mentorship_program_id IN (?)", owned)
	}
	var res []models.Enrollment
	if err := q.Order("enrollments.created_at desc").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// SetEnrollmentStatus changes one enrollment's status. Accepting locks the
// program row and fails with ErrProgramFull when no seat is left. Setting the
// current status again is a no-op.
func (s *Store) SetEnrollmentStatus(ctx context.Context, id string, status models.EnrollmentStatus) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e models.Enrollment
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return err
		}
		if status == models.EnrollmentAccepted {
			if err := reserveSeats(tx, e.MentorshipProgramID, []string{id}); err != nil {
				return err
			}
			// re-read under the program lock
			if err := tx.First(&e, "id = ?", id).Error; err != nil {
				return err
			}
		}
		if e.Status == status {
			return nil
		}
		return tx.Model(&models.Enrollment{}).Where("id = ?", id).
			Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
	})
}

// BulkSetEnrollmentStatus applies one status to every listed enrollment, or
// to none of them. It returns the enrollments as they were before the change.
func (s *Store) BulkSetEnrollmentStatus(ctx context.Context, ids []string, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	var before []models.Enrollment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id IN ?", ids).Find(&before).Error; err != nil {
			return err
		}
		if len(before) != len(ids) {
			return gorm.ErrRecordNotFound
		}
		if status == models.EnrollmentAccepted {
			byProgram := map[string][]string{}
			for _, e := range before {
				byProgram[e.MentorshipProgramID] = append(byProgram[e.MentorshipProgramID], e.ID)
			}
			programIDs := make([]string, 0, len(byProgram))
			for pid := range byProgram {
				programIDs = append(programIDs, pid)
			}
			// fixed lock order across concurrent bulk requests
			sort.Strings(programIDs)
			for _, pid := range programIDs {
				if err := reserveSeats(tx, pid, byProgram[pid]); err != nil {
					return err
				}
			}
			before = before[:0]
			if err := tx.Where("id IN ?", ids).Find(&before).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Enrollment{}).Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}
	return before, nil
}

// reserveSeats locks the program and checks that accepting the given
// enrollments keeps it within max_participants. Enrollments already accepted
// take no new seat.
func reserveSeats(tx *gorm.DB, programID string, enrollmentIDs []string) error {
	p, err := lockProgram(tx, programID)
	if err != nil {
		return err
	}
	accepted, err := countAccepted(tx, programID)
	if err != nil {
		return err
	}
	var already int64
	if err := tx.Model(&models.Enrollment{}).
		Where("id IN ? AND status = ?", enrollmentIDs, models.EnrollmentAccepted).
		Count(&already).Error; err != nil {
		return err
	}
	if accepted+int64(len(enrollmentIDs))-already > int64(p.MaxParticipants) {
		return fmt.Errorf("%w: %s accepts at most %d participants", ErrProgramFull, p.Name, p.MaxParticipants)
	}
	return nil
}

func (s *Store) DeleteEnrollment(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_id = ?", id).Delete(&models.FormResponse{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Enrollment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
