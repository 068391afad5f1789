package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
	"gorm.io/gorm"
)

type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// GoogleProfile is the identity asserted by a verified Google ID token.
type GoogleProfile struct {
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// SignInGoogle returns the user for the profile's email, creating a plain
// user on first sign-in. Existing users come back unchanged.
func (s *UserService) SignInGoogle(ctx context.Context, p GoogleProfile) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return nil, newError(ErrUnauthorized, "Google account has no email")
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	u = &models.User{
		Name:          name,
		Email:         email,
		Role:          models.RoleUser,
		EmailVerified: p.EmailVerified,
		Image:         p.Picture,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// concurrent first sign-in
			return s.repo.GetUserByEmail(ctx, email)
		}
		return nil, err
	}
	s.log.Info("user created", "user_id", u.ID)
	return u, nil
}

func (s *UserService) Me(ctx context.Context, actor *models.User) (*models.User, error) {
	u, err := s.repo.GetUserWithEnrollments(ctx, actor.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	return u, err
}

func (s *UserService) MyEnrollments(ctx context.Context, actor *models.User) ([]models.Enrollment, error) {
	return s.repo.ListEnrollments(ctx, store.EnrollmentFilter{UserID: actor.ID, WithProgramDetails: true})
}

// Get returns another user's profile. Admins only see applicants to their own programs.
func (s *UserService) Get(ctx context.Context, actor *models.User, id string) (*models.User, error) {
	if err := s.checkVisible(ctx, actor, id); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUserWithEnrollments(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleAdmin && id != actor.ID {
		u.Enrollments = onlyProgramsOf(u.Enrollments, actor.ID)
	}
	return u, nil
}

func (s *UserService) Enrollments(ctx context.Context, actor *models.User, id string) ([]models.Enrollment, error) {
	if _, err := s.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, err
	}
	f := store.EnrollmentFilter{UserID: id}
	if actor.Role == models.RoleAdmin && id != actor.ID {
		f.ProgramCreator = actor.ID
	}
	return s.repo.ListEnrollments(ctx, f)
}

func (s *UserService) checkVisible(ctx context.Context, actor *models.User, id string) error {
	if actor.Role != models.RoleAdmin || actor.ID == id {
		return nil
	}
	ok, err := s.repo.IsEnrolledInProgramsOf(ctx, id, actor.ID)
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrForbidden, "You can only view users enrolled in your programs")
	}
	return nil
}

func onlyProgramsOf(list []models.Enrollment, creatorID string) []models.Enrollment {
	out := list[:0:0]
	for _, e := range list {
		if e.MentorshipProgram != nil && e.MentorshipProgram.CreatedBy == creatorID {
			out = append(out, e)
		}
	}
	return out
}
