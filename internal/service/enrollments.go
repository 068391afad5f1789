package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/madhava-poojari/mentorship-api/internal/events"
	"github.com/madhava-poojari/mentorship-api/internal/forms"
	"github.com/madhava-poojari/mentorship-api/internal/metrics"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/store"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	repo   EnrollmentRepository
	events events.Publisher
	log    *slog.Logger
}

func NewEnrollmentService(repo EnrollmentRepository, pub events.Publisher, log *slog.Logger) *EnrollmentService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &EnrollmentService{repo: repo, events: pub, log: log}
}

type EnrollmentInput struct {
	ProgramID string
	Responses []forms.Response
}

// List returns the enrollments visible to the actor: applicants see their
// own, admins those of their programs, superadmins all of them.
func (s *EnrollmentService) List(ctx context.Context, actor *models.User, programID string) ([]models.Enrollment, error) {
	f := store.EnrollmentFilter{ProgramID: programID}
	switch actor.Role {
	case models.RoleSuperadmin:
	case models.RoleAdmin:
		if programID != "" {
			if _, err := s.ownedProgram(ctx, actor, programID); err != nil {
				return nil, err
			}
		}
		f.ProgramCreator = actor.ID
	default:
		f.UserID = actor.ID
	}
	return s.repo.ListEnrollments(ctx, f)
}

func (s *EnrollmentService) ListForProgram(ctx context.Context, actor *models.User, programID string) ([]models.Enrollment, error) {
	if _, err := s.ownedProgram(ctx, actor, programID); err != nil {
		return nil, err
	}
	return s.repo.ListEnrollments(ctx, store.EnrollmentFilter{ProgramID: programID})
}

func (s *EnrollmentService) Get(ctx context.Context, actor *models.User, id string) (*models.Enrollment, error) {
	e, err := s.enrollment(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID == actor.ID || actor.Role == models.RoleSuperadmin {
		return e, nil
	}
	if actor.Role == models.RoleAdmin && e.MentorshipProgram != nil && e.MentorshipProgram.CreatedBy == actor.ID {
		return e, nil
	}
	return nil, newError(ErrForbidden, "You can only view enrollments you have access to")
}

// Create applies the actor to a program. The enrollment and its responses are
// stored together or not at all.
func (s *EnrollmentService) Create(ctx context.Context, actor *models.User, in EnrollmentInput) (*models.Enrollment, error) {
	p, err := s.repo.GetProgram(ctx, in.ProgramID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Mentorship program")
	}
	if err != nil {
		return nil, err
	}
	if p.Status != models.ProgramStatusOpen {
		return nil, newError(ErrBadRequest, "This program is not accepting applications")
	}

	existing, err := s.repo.FindEnrollment(ctx, actor.ID, p.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrConflict, "You are already enrolled in this program")
	}

	// every application counts here; accepting re-checks seats under a lock
	total, err := s.repo.CountEnrollments(ctx, p.ID, "")
	if err != nil {
		return nil, err
	}
	if total >= int64(p.MaxParticipants) {
		return nil, newError(ErrBadRequest, "This program is full")
	}

	rows, err := forms.ValidateResponses(p.FormFields, in.Responses)
	if err != nil {
		return nil, asBadRequest(err)
	}

	e := &models.Enrollment{
		UserID:              actor.ID,
		MentorshipProgramID: p.ID,
		Status:              models.EnrollmentPending,
	}
	if err := s.repo.CreateEnrollment(ctx, e, rows); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "You are already enrolled in this program")
		}
		return nil, err
	}
	s.log.Info("enrollment created", "enrollment_id", e.ID, "program_id", p.ID, "user_id", actor.ID)
	metrics.EnrollmentCreated()
	s.publish(ctx, events.NewEnrollmentEvent(events.EnrollmentCreated, e, actor.ID))
	return s.repo.GetEnrollment(ctx, e.ID)
}

// Withdraw deletes an enrollment. Applicants withdraw their own, admins also
// those in their programs, superadmins any.
func (s *EnrollmentService) Withdraw(ctx context.Context, actor *models.User, id string) error {
	e, err := s.enrollment(ctx, id)
	if err != nil {
		return err
	}
	allowed := e.UserID == actor.ID || actor.Role == models.RoleSuperadmin ||
		(actor.Role == models.RoleAdmin && e.MentorshipProgram != nil && e.MentorshipProgram.CreatedBy == actor.ID)
	if !allowed {
		return newError(ErrForbidden, "You can only withdraw your own enrollments")
	}
	if err := s.repo.DeleteEnrollment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("Enrollment")
		}
		return err
	}
	s.log.Info("enrollment withdrawn", "enrollment_id", id, "actor_id", actor.ID)
	s.publish(ctx, events.NewEnrollmentEvent(events.EnrollmentWithdrawn, e, actor.ID))
	return nil
}

// Decide accepts or rejects one enrollment. Accepting fails when the program
// has no seat left.
func (s *EnrollmentService) Decide(ctx context.Context, actor *models.User, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
	if status != models.EnrollmentAccepted && status != models.EnrollmentRejected {
		return nil, newError(ErrBadRequest, "invalid decision %q", status)
	}
	e, err := s.enrollment(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.MentorshipProgram == nil || !canManage(actor, e.MentorshipProgram) {
		return nil, newError(ErrForbidden, "You can only manage enrollments in your own programs")
	}

	prev := e.Status
	if err := s.repo.SetEnrollmentStatus(ctx, id, status); err != nil {
		return nil, s.statusError(err)
	}
	if prev != status {
		e.Status = status
		s.publish(ctx, s.recordDecision(ctx, actor, e, prev))
	}
	return s.repo.GetEnrollment(ctx, id)
}

// BulkSetStatus moves every listed enrollment to status in one transaction.
func (s *EnrollmentService) BulkSetStatus(ctx context.Context, actor *models.User, ids []string, status models.EnrollmentStatus) (int, error) {
	if !status.Valid() {
		return 0, newError(ErrBadRequest, "invalid status %q", status)
	}
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return 0, newError(ErrBadRequest, "enrollment_ids must not be empty")
	}

	before, err := s.repo.BulkSetEnrollmentStatus(ctx, uniq, status)
	if err != nil {
		return 0, s.statusError(err)
	}
	var evs []events.Event
	for i := range before {
		e := before[i]
		if e.Status == status {
			continue
		}
		prev := e.Status
		e.Status = status
		evs = append(evs, s.recordDecision(ctx, actor, &e, prev))
	}
	s.publish(ctx, evs...)
	s.log.Info("bulk enrollment status", "status", status, "requested", len(uniq), "changed", len(evs), "actor_id", actor.ID)
	return len(evs), nil
}

// recordDecision audits a status change and returns the event to publish.
func (s *EnrollmentService) recordDecision(ctx context.Context, actor *models.User, e *models.Enrollment, prev models.EnrollmentStatus) events.Event {
	audit(ctx, s.repo, s.log, actor, models.AuditEnrollmentDecided, "enrollment", e.ID, map[string]interface{}{
		"from":       string(prev),
		"to":         string(e.Status),
		"program_id": e.MentorshipProgramID,
	})
	metrics.EnrollmentStatusChanged(string(e.Status))
	ev := events.NewEnrollmentEvent(events.EnrollmentStatusChanged, e, actor.ID)
	ev.PreviousStatus = prev
	return ev
}

func (s *EnrollmentService) statusError(err error) error {
	switch {
	case errors.Is(err, store.ErrProgramFull):
		return newError(ErrBadRequest, "Program has reached maximum participants")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return newError(ErrNotFound, "One or more enrollments not found")
	}
	return err
}

func (s *EnrollmentService) publish(ctx context.Context, evs ...events.Event) {
	if len(evs) == 0 {
		return
	}
	if err := s.events.Publish(ctx, evs...); err != nil {
		s.log.Warn("publish enrollment events failed", "type", evs[0].Type, "count", len(evs), "enrollment_id", evs[0].EnrollmentID, "error", err)
		for _, ev := range evs {
			metrics.EventPublishFailed(ev.Type)
		}
	}
}

func (s *EnrollmentService) enrollment(ctx context.Context, id string) (*models.Enrollment, error) {
	e, err := s.repo.GetEnrollment(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Enrollment")
	}
	return e, err
}

// ownedProgram loads a program the actor reviews: superadmins any, admins their own.
func (s *EnrollmentService) ownedProgram(ctx context.Context, actor *models.User, id string) (*models.MentorshipProgram, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Program")
	}
	if err != nil {
		return nil, err
	}
	if !canManage(actor, p) {
		return nil, newError(ErrForbidden, "You can only view enrollments for your own programs")
	}
	return p, nil
}
