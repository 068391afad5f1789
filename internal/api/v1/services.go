package v1

import (
	"context"
	"io"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
)

// The handlers depend on these narrow views of the service layer so they can
// be tested without a database.

type ProgramAPI interface {
	List(ctx context.Context, actor *models.User) ([]models.MentorshipProgram, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error)
	Create(ctx context.Context, actor *models.User, in service.ProgramInput) (*models.MentorshipProgram, error)
	Update(ctx context.Context, actor *models.User, id string, in service.ProgramUpdate) (*models.MentorshipProgram, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

type FormAPI interface {
	Fields(ctx context.Context, actor *models.User, programID string) ([]models.FormField, error)
	AddFields(ctx context.Context, actor *models.User, programID string, in []service.NewField) ([]models.FormField, error)
	UpdateField(ctx context.Context, actor *models.User, id string, in service.FieldUpdate) (*models.FormField, error)
	DeleteField(ctx context.Context, actor *models.User, id string) error
}

type UploadAPI interface {
	MaxBytes() int64
	Save(ctx context.Context, actor *models.User, originalName string, size int64, r io.ReadSeeker) (*service.UploadedFile, error)
}

type EnrollmentAPI interface {
	List(ctx context.Context, actor *models.User, programID string) ([]models.Enrollment, error)
	ListForProgram(ctx context.Context, actor *models.User, programID string) ([]models.Enrollment, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.Enrollment, error)
	Create(ctx context.Context, actor *models.User, in service.EnrollmentInput) (*models.Enrollment, error)
	Withdraw(ctx context.Context, actor *models.User, id string) error
	Decide(ctx context.Context, actor *models.User, id string, status models.EnrollmentStatus) (*models.Enrollment, error)
	BulkSetStatus(ctx context.Context, actor *models.User, ids []string, status models.EnrollmentStatus) (int, error)
}

type UserAPI interface {
	SignInGoogle(ctx context.Context, p service.GoogleProfile) (*models.User, error)
	Me(ctx context.Context, actor *models.User) (*models.User, error)
	MyEnrollments(ctx context.Context, actor *models.User) ([]models.Enrollment, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.User, error)
	Enrollments(ctx context.Context, actor *models.User, id string) ([]models.Enrollment, error)
}

type SuperadminAPI interface {
	Stats(ctx context.Context) (*models.PlatformStats, error)
	Users(ctx context.Context, role models.Role) ([]models.User, error)
	User(ctx context.Context, id string) (*models.User, error)
	ChangeRole(ctx context.Context, actor *models.User, id string, role models.Role) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, id string) error
	Admins(ctx context.Context) ([]models.User, error)
	Programs(ctx context.Context, status models.ProgramStatus) ([]models.MentorshipProgram, error)
	CloseProgram(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error)
	DeleteProgram(ctx context.Context, actor *models.User, id string) error
	Enrollments(ctx context.Context, status models.EnrollmentStatus, programID string) ([]models.Enrollment, error)
	Audit(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// TokenStore persists the opaque refresh tokens behind the refresh cookie.
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, userID, plainToken string, expiresAt time.Time) error
	RotateRefreshToken(ctx context.Context, oldPlain, newPlain string, newExpiry time.Time) (string, error)
	RevokeRefreshToken(ctx context.Context, plainToken string) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
