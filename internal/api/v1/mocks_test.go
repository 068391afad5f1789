package v1

import (
	"context"
	"io"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockPrograms struct{ mock.Mock }

func (m *mockPrograms) List(ctx context.Context, actor *models.User) ([]models.MentorshipProgram, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]models.MentorshipProgram)
	return list, args.Error(1)
}

func (m *mockPrograms) Get(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error) {
	args := m.Called(ctx, actor, id)
	p, _ := args.Get(0).(*models.MentorshipProgram)
	return p, args.Error(1)
}

func (m *mockPrograms) Create(ctx context.Context, actor *models.User, in service.ProgramInput) (*models.MentorshipProgram, error) {
	args := m.Called(ctx, actor, in)
	p, _ := args.Get(0).(*models.MentorshipProgram)
	return p, args.Error(1)
}

func (m *mockPrograms) Update(ctx context.Context, actor *models.User, id string, in service.ProgramUpdate) (*models.MentorshipProgram, error) {
	args := m.Called(ctx, actor, id, in)
	p, _ := args.Get(0).(*models.MentorshipProgram)
	return p, args.Error(1)
}

func (m *mockPrograms) Delete(ctx context.Context, actor *models.User, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockForms struct{ mock.Mock }

func (m *mockForms) Fields(ctx context.Context, actor *models.User, programID string) ([]models.FormField, error) {
	args := m.Called(ctx, actor, programID)
	list, _ := args.Get(0).([]models.FormField)
	return list, args.Error(1)
}

func (m *mockForms) AddFields(ctx context.Context, actor *models.User, programID string, in []service.NewField) ([]models.FormField, error) {
	args := m.Called(ctx, actor, programID, in)
	list, _ := args.Get(0).([]models.FormField)
	return list, args.Error(1)
}

func (m *mockForms) UpdateField(ctx context.Context, actor *models.User, id string, in service.FieldUpdate) (*models.FormField, error) {
	args := m.Called(ctx, actor, id, in)
	f, _ := args.Get(0).(*models.FormField)
	return f, args.Error(1)
}

func (m *mockForms) DeleteField(ctx context.Context, actor *models.User, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockUploads struct{ mock.Mock }

func (m *mockUploads) MaxBytes() int64 { return 1 << 20 }

func (m *mockUploads) Save(ctx context.Context, actor *models.User, originalName string, size int64, r io.ReadSeeker) (*service.UploadedFile, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, actor, originalName, string(data))
	f, _ := args.Get(0).(*service.UploadedFile)
	return f, args.Error(1)
}

type mockEnrollments struct{ mock.Mock }

func (m *mockEnrollments) List(ctx context.Context, actor *models.User, programID string) ([]models.Enrollment, error) {
	args := m.Called(ctx, actor, programID)
	list, _ := args.Get(0).([]models.Enrollment)
	return list, args.Error(1)
}

func (m *mockEnrollments) ListForProgram(ctx context.Context, actor *models.User, programID string) ([]models.Enrollment, error) {
	args := m.Called(ctx, actor, programID)
	list, _ := args.Get(0).([]models.Enrollment)
	return list, args.Error(1)
}

func (m *mockEnrollments) Get(ctx context.Context, actor *models.User, id string) (*models.Enrollment, error) {
	args := m.Called(ctx, actor, id)
	e, _ := args.Get(0).(*models.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollments) Create(ctx context.Context, actor *models.User, in service.EnrollmentInput) (*models.Enrollment, error) {
	args := m.Called(ctx, actor, in)
	e, _ := args.Get(0).(*models.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollments) Withdraw(ctx context.Context, actor *models.User, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockEnrollments) Decide(ctx context.Context, actor *models.User, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
	args := m.Called(ctx, actor, id, status)
	e, _ := args.Get(0).(*models.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollments) BulkSetStatus(ctx context.Context, actor *models.User, ids []string, status models.EnrollmentStatus) (int, error) {
	args := m.Called(ctx, actor, ids, status)
	return args.Int(0), args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) SignInGoogle(ctx context.Context, p service.GoogleProfile) (*models.User, error) {
	args := m.Called(ctx, p)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) Me(ctx context.Context, actor *models.User) (*models.User, error) {
	args := m.Called(ctx, actor)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) MyEnrollments(ctx context.Context, actor *models.User) ([]models.Enrollment, error) {
	args := m.Called(ctx, actor)
	list, _ := args.Get(0).([]models.Enrollment)
	return list, args.Error(1)
}

func (m *mockUsers) Get(ctx context.Context, actor *models.User, id string) (*models.User, error) {
	args := m.Called(ctx, actor, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) Enrollments(ctx context.Context, actor *models.User, id string) ([]models.Enrollment, error) {
	args := m.Called(ctx, actor, id)
	list, _ := args.Get(0).([]models.Enrollment)
	return list, args.Error(1)
}

type mockSuperadmin struct{ mock.Mock }

func (m *mockSuperadmin) Stats(ctx context.Context) (*models.PlatformStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.PlatformStats)
	return s, args.Error(1)
}

func (m *mockSuperadmin) Users(ctx context.Context, role models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	list, _ := args.Get(0).([]models.User)
	return list, args.Error(1)
}

func (m *mockSuperadmin) User(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockSuperadmin) ChangeRole(ctx context.Context, actor *models.User, id string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, actor, id, role)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockSuperadmin) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockSuperadmin) Admins(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.User)
	return list, args.Error(1)
}

func (m *mockSuperadmin) Programs(ctx context.Context, status models.ProgramStatus) ([]models.MentorshipProgram, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]models.MentorshipProgram)
	return list, args.Error(1)
}

func (m *mockSuperadmin) CloseProgram(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error) {
	args := m.Called(ctx, actor, id)
	p, _ := args.Get(0).(*models.MentorshipProgram)
	return p, args.Error(1)
}

func (m *mockSuperadmin) DeleteProgram(ctx context.Context, actor *models.User, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockSuperadmin) Enrollments(ctx context.Context, status models.EnrollmentStatus, programID string) ([]models.Enrollment, error) {
	args := m.Called(ctx, status, programID)
	list, _ := args.Get(0).([]models.Enrollment)
	return list, args.Error(1)
}

func (m *mockSuperadmin) Audit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]models.AuditEntry)
	return list, args.Error(1)
}

// fakeTokens resolves users from a fixed map and records refresh tokens.
type fakeTokens struct {
	users   map[string]*models.User
	saved   map[string]string
	revoked []string
	rotate  func(old string) (string, error)
}

func newFakeTokens(users ...*models.User) *fakeTokens {
	t := &fakeTokens{users: map[string]*models.User{}, saved: map[string]string{}}
	for _, u := range users {
		t.users[u.ID] = u
	}
	return t
}

func (t *fakeTokens) SaveRefreshToken(_ context.Context, userID, plain string, _ time.Time) error {
	t.saved[plain] = userID
	return nil
}

func (t *fakeTokens) RotateRefreshToken(_ context.Context, oldPlain, newPlain string, _ time.Time) (string, error) {
	if t.rotate != nil {
		return t.rotate(oldPlain)
	}
	uid, ok := t.saved[oldPlain]
	if !ok {
		return "", service.ErrUnauthorized
	}
	delete(t.saved, oldPlain)
	t.saved[newPlain] = uid
	return uid, nil
}

func (t *fakeTokens) RevokeRefreshToken(_ context.Context, plain string) error {
	t.revoked = append(t.revoked, plain)
	return nil
}

func (t *fakeTokens) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := t.users[id]; ok {
		return u, nil
	}
	return nil, service.ErrNotFound
}

type fakeGoogle struct {
	id  *auth.GoogleIdentity
	err error
}

func (g fakeGoogle) Exchange(context.Context, string) (*auth.GoogleIdentity, error) {
	return g.id, g.err
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
