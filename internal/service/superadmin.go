package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
	"gorm.io/gorm"
)

const (
	DefaultAuditLimit = 100
	MaxAuditLimit     = 500
)

// SuperadminService backs the platform-wide management endpoints. Callers
// are expected to have passed the superadmin role guard.
type SuperadminService struct {
	repo AdminRepository
	log  *slog.Logger
}

func NewSuperadminService(repo AdminRepository, log *slog.Logger) *SuperadminService {
	return &SuperadminService{repo: repo, log: log}
}

func (s *SuperadminService) Stats(ctx context.Context) (*models.PlatformStats, error) {
	return s.repo.Stats(ctx)
}

func (s *SuperadminService) Users(ctx context.Context, role models.Role) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, newError(ErrBadRequest, "invalid role %q", role)
	}
	return s.repo.ListUsers(ctx, role)
}

func (s *SuperadminService) User(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetUserDetails(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	return u, err
}

func (s *SuperadminService) ChangeRole(ctx context.Context, actor *models.User, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, newError(ErrBadRequest, "invalid role %q", role)
	}
	if id == actor.ID {
		return nil, newError(ErrBadRequest, "You cannot change your own role")
	}
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	if err != nil {
		return nil, err
	}
	if u.Role == role {
		return u, nil
	}
	if err := s.repo.UpdateUserRole(ctx, id, role); err != nil {
		return nil, err
	}
	audit(ctx, s.repo, s.log, actor, models.AuditRoleChanged, "user", id, map[string]interface{}{
		"from": string(u.Role),
		"to":   string(role),
	})
	s.log.Info("user role changed", "user_id", id, "role", role, "actor_id", actor.ID)
	u.Role = role
	return u, nil
}

func (s *SuperadminService) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("User")
	}
	if err != nil {
		return err
	}
	if u.Role == models.RoleSuperadmin {
		return newError(ErrBadRequest, "Superadmin users cannot be deleted")
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("User")
		}
		return err
	}
	audit(ctx, s.repo, s.log, actor, models.AuditUserDeleted, "user", id, map[string]interface{}{
		"email": u.Email,
		"role":  string(u.Role),
	})
	s.log.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}

func (s *SuperadminService) Admins(ctx context.Context) ([]models.User, error) {
	return s.repo.ListAdmins(ctx)
}

func (s *SuperadminService) Programs(ctx context.Context, status models.ProgramStatus) ([]models.MentorshipProgram, error) {
	if status != "" && status != models.ProgramStatusOpen && status != models.ProgramStatusClosed {
		return nil, newError(ErrBadRequest, "invalid status %q", status)
	}
	return s.repo.ListPrograms(ctx, store.ProgramFilter{Status: status})
}

func (s *SuperadminService) CloseProgram(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Program")
	}
	if err != nil {
		return nil, err
	}
	if p.Status == models.ProgramStatusClosed {
		return nil, newError(ErrBadRequest, "Program is already closed")
	}
	if err := s.repo.UpdateProgram(ctx, id, map[string]interface{}{"status": models.ProgramStatusClosed}); err != nil {
		return nil, err
	}
	audit(ctx, s.repo, s.log, actor, models.AuditProgramClosed, "program", id, map[string]interface{}{
		"name": p.Name,
	})
	p.Status = models.ProgramStatusClosed
	return p, nil
}

func (s *SuperadminService) DeleteProgram(ctx context.Context, actor *models.User, id string) error {
	p, err := s.repo.GetProgram(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("Program")
	}
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProgram(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Program")
		}
		return err
	}
	audit(ctx, s.repo, s.log, actor, models.AuditProgramDeleted, "program", id, map[string]interface{}{
		"name":       p.Name,
		"created_by": p.CreatedBy,
	})
	return nil
}

func (s *SuperadminService) Enrollments(ctx context.Context, status models.EnrollmentStatus, programID string) ([]models.Enrollment, error) {
	if status != "" && !status.Valid() {
		return nil, newError(ErrBadRequest, "invalid status %q", status)
	}
	return s.repo.ListEnrollments(ctx, store.EnrollmentFilter{Status: status, ProgramID: programID})
}

// Audit returns the latest entries. limit falls back to DefaultAuditLimit and
// is capped at MaxAuditLimit.
func (s *SuperadminService) Audit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}
	return s.repo.ListAudit(ctx, limit)
}
