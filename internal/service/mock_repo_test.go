package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/madhava-poojari/mentorship-api/internal/events"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockRepo implements every repository interface of this package.
type MockRepo struct {
	mock.Mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (m *MockRepo) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepo) GetUserWithEnrollments(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepo) GetUserDetails(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepo) IsEnrolledInProgramsOf(ctx context.Context, userID, creatorID string) (bool, error) {
	args := m.Called(ctx, userID, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRepo) ListAdmins(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRepo) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockRepo) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) CreateProgram(ctx context.Context, p *models.MentorshipProgram, fields []models.FormField) error {
	return m.Called(ctx, p, fields).Error(0)
}

func (m *MockRepo) GetProgram(ctx context.Context, id string) (*models.MentorshipProgram, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipProgram), args.Error(1)
}

func (m *MockRepo) ListPrograms(ctx context.Context, f store.ProgramFilter) ([]models.MentorshipProgram, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MentorshipProgram), args.Error(1)
}

func (m *MockRepo) UpdateProgram(ctx context.Context, id string, updates map[string]interface{}) error {
	return m.Called(ctx, id, updates).Error(0)
}

func (m *MockRepo) DeleteProgram(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) ListFormFields(ctx context.Context, programID string) ([]models.FormField, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormField), args.Error(1)
}

func (m *MockRepo) GetFormField(ctx context.Context, id string) (*models.FormField, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormField), args.Error(1)
}

func (m *MockRepo) CreateFormFields(ctx context.Context, fields []models.FormField) error {
	return m.Called(ctx, fields).Error(0)
}

func (m *MockRepo) UpdateFormField(ctx context.Context, f *models.FormField) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockRepo) DeleteFormField(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) CountEnrollments(ctx context.Context, programID string, status models.EnrollmentStatus) (int64, error) {
	args := m.Called(ctx, programID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepo) FindEnrollment(ctx context.Context, userID, programID string) (*models.Enrollment, error) {
	args := m.Called(ctx, userID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockRepo) CreateEnrollment(ctx context.Context, e *models.Enrollment, responses []models.FormResponse) error {
	return m.Called(ctx, e, responses).Error(0)
}

func (m *MockRepo) GetEnrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockRepo) ListEnrollments(ctx context.Context, f store.EnrollmentFilter) ([]models.Enrollment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Enrollment), args.Error(1)
}

func (m *MockRepo) SetEnrollmentStatus(ctx context.Context, id string, status models.EnrollmentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockRepo) BulkSetEnrollmentStatus(ctx context.Context, ids []string, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	args := m.Called(ctx, ids, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Enrollment), args.Error(1)
}

func (m *MockRepo) DeleteEnrollment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) Stats(ctx context.Context) (*models.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlatformStats), args.Error(1)
}

func (m *MockRepo) RecordAudit(ctx context.Context, e *models.AuditEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepo) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evs ...events.Event) error {
	return m.Called(ctx, evs).Error(0)
}

func (m *MockPublisher) Close() error { return nil }
