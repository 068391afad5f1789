package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/forms"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
	"gorm.io/gorm"
)

type ProgramService struct {
	repo ProgramRepository
	log  *slog.Logger
}

func NewProgramService(repo ProgramRepository, log *slog.Logger) *ProgramService {
	return &ProgramService{repo: repo, log: log}
}

// NewField is a field to add to a program. A nil Order places it after the
// fields before it.
type NewField struct {
	Definition forms.FieldDefinition
	Order      *int
}

type ProgramInput struct {
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	MaxParticipants int
	FormFields      []NewField
}

type ProgramUpdate struct {
	Name            *string
	Description     *string
	StartDate       *time.Time
	EndDate         *time.Time
	MaxParticipants *int
	Status          *models.ProgramStatus
}

// canManage reports whether the actor may change the program: superadmins
// manage every program, admins only their own.
func canManage(actor *models.User, p *models.MentorshipProgram) bool {
	return actor.Role == models.RoleSuperadmin || (actor.Role == models.RoleAdmin && p.CreatedBy == actor.ID)
}

func (s *ProgramService) List(ctx context.Context, actor *models.User) ([]models.MentorshipProgram, error) {
	var f store.ProgramFilter
	if !actor.Role.IsStaff() {
		f.Status = models.ProgramStatusOpen
	}
	return s.repo.ListPrograms(ctx, f)
}

func (s *ProgramService) Get(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Program")
	}
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() && p.Status != models.ProgramStatusOpen {
		return nil, notFound("Program")
	}
	return p, nil
}

func (s *ProgramService) Create(ctx context.Context, actor *models.User, in ProgramInput) (*models.MentorshipProgram, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Description == "" {
		return nil, newError(ErrBadRequest, "name and description are required")
	}
	if err := checkSchedule(in.StartDate, in.EndDate, in.MaxParticipants); err != nil {
		return nil, err
	}
	fields, err := buildFields(in.FormFields, 0)
	if err != nil {
		return nil, err
	}

	p := &models.MentorshipProgram{
		Name:            in.Name,
		Description:     in.Description,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		MaxParticipants: in.MaxParticipants,
		Status:          models.ProgramStatusOpen,
		CreatedBy:       actor.ID,
	}
	if err := s.repo.CreateProgram(ctx, p, fields); err != nil {
		return nil, err
	}
	s.log.Info("program created", "program_id", p.ID, "created_by", actor.ID, "fields", len(fields))
	return s.repo.GetProgram(ctx, p.ID)
}

func (s *ProgramService) Update(ctx context.Context, actor *models.User, id string, in ProgramUpdate) (*models.MentorshipProgram, error) {
	p, err := s.managedProgram(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, newError(ErrBadRequest, "name must not be empty")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return nil, newError(ErrBadRequest, "description must not be empty")
		}
		updates["description"] = desc
	}
	start, end, limit := p.StartDate, p.EndDate, p.MaxParticipants
	if in.StartDate != nil {
		start = *in.StartDate
		updates["start_date"] = start
	}
	if in.EndDate != nil {
		end = *in.EndDate
		updates["end_date"] = end
	}
	if in.MaxParticipants != nil {
		limit = *in.MaxParticipants
		updates["max_participants"] = limit
	}
	if err := checkSchedule(start, end, limit); err != nil {
		return nil, err
	}
	if in.Status != nil {
		if *in.Status != models.ProgramStatusOpen && *in.Status != models.ProgramStatusClosed {
			return nil, newError(ErrBadRequest, "invalid status %q", *in.Status)
		}
		updates["status"] = *in.Status
	}
	if len(updates) == 0 {
		return p, nil
	}

	err = s.repo.UpdateProgram(ctx, id, updates)
	if errors.Is(err, store.ErrCapacityBelowAccepted) {
		return nil, newError(ErrBadRequest, "max_participants cannot be lower than the number of accepted enrollments")
	}
	if err != nil {
		return nil, err
	}
	return s.repo.GetProgram(ctx, id)
}

func (s *ProgramService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.managedProgram(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProgram(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Program")
		}
		return err
	}
	s.log.Info("program deleted", "program_id", id, "actor_id", actor.ID)
	return nil
}

func (s *ProgramService) managedProgram(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Program")
	}
	if err != nil {
		return nil, err
	}
	if !canManage(actor, p) {
		return nil, newError(ErrForbidden, "You can only modify your own programs")
	}
	return p, nil
}

func checkSchedule(start, end time.Time, maxParticipants int) error {
	if start.IsZero() || end.IsZero() {
		return newError(ErrBadRequest, "start_date and end_date are required")
	}
	if end.Before(start) {
		return newError(ErrBadRequest, "end_date must not be before start_date")
	}
	if maxParticipants < 1 {
		return newError(ErrBadRequest, "max_participants must be at least 1")
	}
	return nil
}

// buildFields normalizes new field definitions; fields without an explicit
// order are numbered from start in submission order.
func buildFields(in []NewField, start int) ([]models.FormField, error) {
	out := make([]models.FormField, 0, len(in))
	for i, nf := range in {
		def := nf.Definition
		def.Order = start + i
		if nf.Order != nil {
			def.Order = *nf.Order
		}
		if err := def.Normalize(); err != nil {
			return nil, asBadRequest(err)
		}
		out = append(out, def.ToModel(""))
	}
	return out, nil
}

func asBadRequest(err error) error {
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		return newError(ErrBadRequest, "%s", ve.Message)
	}
	return err
}
