package service

import (
	"context"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserWithEnrollments(ctx context.Context, id string) (*models.User, error)
	IsEnrolledInProgramsOf(ctx context.Context, userID, creatorID string) (bool, error)
	ListEnrollments(ctx context.Context, f store.EnrollmentFilter) ([]models.Enrollment, error)
}

type ProgramRepository interface {
	CreateProgram(ctx context.Context, p *models.MentorshipProgram, fields []models.FormField) error
	GetProgram(ctx context.Context, id string) (*models.MentorshipProgram, error)
	ListPrograms(ctx context.Context, f store.ProgramFilter) ([]models.MentorshipProgram, error)
	UpdateProgram(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteProgram(ctx context.Context, id string) error
}

type FormRepository interface {
	GetProgram(ctx context.Context, id string) (*models.MentorshipProgram, error)
	ListFormFields(ctx context.Context, programID string) ([]models.FormField, error)
	GetFormField(ctx context.Context, id string) (*models.FormField, error)
	CreateFormFields(ctx context.Context, fields []models.FormField) error
	UpdateFormField(ctx context.Context, f *models.FormField) error
	DeleteFormField(ctx context.Context, id string) error
}

type EnrollmentRepository interface {
	GetProgram(ctx context.Context, id string) (*models.MentorshipProgram, error)
	ListFormFields(ctx context.Context, programID string) ([]models.FormField, error)
	CountEnrollments(ctx context.Context, programID string, status models.EnrollmentStatus) (int64, error)
	FindEnrollment(ctx context.Context, userID, programID string) (*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, e *models.Enrollment, responses []models.FormResponse) error
	GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, f store.EnrollmentFilter) ([]models.Enrollment, error)
	SetEnrollmentStatus(ctx context.Context, id string, status models.EnrollmentStatus) error
	BulkSetEnrollmentStatus(ctx context.Context, ids []string, status models.EnrollmentStatus) ([]models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error
	RecordAudit(ctx context.Context, e *models.AuditEntry) error
}

type AdminRepository interface {
	Stats(ctx context.Context) (*models.PlatformStats, error)
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
	GetUserDetails(ctx context.Context, id string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) error
	DeleteUser(ctx context.Context, id string) error
	ListAdmins(ctx context.Context) ([]models.User, error)
	ListPrograms(ctx context.Context, f store.ProgramFilter) ([]models.MentorshipProgram, error)
	GetProgram(ctx context.Context, id string) (*models.MentorshipProgram, error)
	UpdateProgram(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteProgram(ctx context.Context, id string) error
	ListEnrollments(ctx context.Context, f store.EnrollmentFilter) ([]models.Enrollment, error)
	RecordAudit(ctx context.Context, e *models.AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
}
