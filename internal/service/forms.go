package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/madhava-poojari/mentorship-api/internal/forms"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"gorm.io/gorm"
)

type FormService struct {
	repo FormRepository
	log  *slog.Logger
}

func NewFormService(repo FormRepository, log *slog.Logger) *FormService {
	return &FormService{repo: repo, log: log}
}

type FieldUpdate struct {
	Title       *string
	Description *string
	FieldType   *models.FieldType
	Options     []string
	IsRequired  *bool
	Order       *int
}

// Fields returns the program's form in display order. Applicants cannot read
// the form of a closed program.
func (s *FormService) Fields(ctx context.Context, actor *models.User, programID string) ([]models.FormField, error) {
	p, err := s.program(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() && p.Status != models.ProgramStatusOpen {
		return nil, newError(ErrForbidden, "This program is not accepting applications")
	}
	return s.repo.ListFormFields(ctx, programID)
}

// AddFields appends fields after the program's current last field.
func (s *FormService) AddFields(ctx context.Context, actor *models.User, programID string, in []NewField) ([]models.FormField, error) {
	if len(in) == 0 {
		return nil, newError(ErrBadRequest, "at least one form field is required")
	}
	p, err := s.program(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, p) {
		return nil, newError(ErrForbidden, "You can only modify your own programs")
	}
	fields, err := buildFields(in, forms.NextOrder(p.FormFields))
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i].MentorshipProgramID = programID
	}
	if err := s.repo.CreateFormFields(ctx, fields); err != nil {
		return nil, err
	}
	s.log.Info("form fields added", "program_id", programID, "count", len(fields))
	return fields, nil
}

// UpdateField applies a partial change and re-validates the whole field.
func (s *FormService) UpdateField(ctx context.Context, actor *models.User, id string, in FieldUpdate) (*models.FormField, error) {
	f, err := s.managedField(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	def := forms.DefinitionOf(*f)
	if in.Title != nil {
		def.Title = *in.Title
	}
	if in.Description != nil {
		def.Description = in.Description
	}
	if in.FieldType != nil {
		def.FieldType = *in.FieldType
	}
	if in.Options != nil {
		def.Options = in.Options
	}
	if in.IsRequired != nil {
		def.IsRequired = *in.IsRequired
	}
	if in.Order != nil {
		def.Order = *in.Order
	}
	if err := def.Normalize(); err != nil {
		return nil, asBadRequest(err)
	}

	updated := def.ToModel(f.MentorshipProgramID)
	updated.ID = f.ID
	updated.CreatedAt = f.CreatedAt
	if err := s.repo.UpdateFormField(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *FormService) DeleteField(ctx context.Context, actor *models.User, id string) error {
	if _, err := s.managedField(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteFormField(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Form field")
		}
		return err
	}
	return nil
}

func (s *FormService) program(ctx context.Context, id string) (*models.MentorshipProgram, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Program")
	}
	return p, err
}

func (s *FormService) managedField(ctx context.Context, actor *models.User, id string) (*models.FormField, error) {
	f, err := s.repo.GetFormField(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Form field")
	}
	if err != nil {
		return nil, err
	}
	if f.MentorshipProgram == nil || !canManage(actor, f.MentorshipProgram) {
		return nil, newError(ErrForbidden, "You can only modify your own programs")
	}
	return f, nil
}
