package store

import (
	"context"
	"fmt"

	"github.com/madhava-poojari/mentorship-api/internal/models"
)

type groupCount struct {
	Key string
	N   int64
}

func (s *Store) countBy(ctx context.Context, model interface{}, column string) ([]groupCount, error) {
	var rows []groupCount
	err := s.DB.WithContext(ctx).Model(model).
		Select(column + " as key, count(*) as n").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

// Stats aggregates platform-wide counts for the superadmin dashboard.
func (s *Store) Stats(ctx context.Context) (*models.PlatformStats, error) {
	var st models.PlatformStats

	users, err := s.countBy(ctx, &models.User{}, "role")
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	for _, r := range users {
		st.Users.Total += r.N
		switch models.Role(r.Key) {
		case models.RoleAdmin:
			st.Users.Admins = r.N
		case models.RoleSuperadmin:
			st.Users.Superadmins = r.N
		}
	}

	programs, err := s.countBy(ctx, &models.MentorshipProgram{}, "status")
	if err != nil {
		return nil, fmt.Errorf("program stats: %w", err)
	}
	for _, r := range programs {
		st.Programs.Total += r.N
		switch models.ProgramStatus(r.Key) {
		case models.ProgramStatusOpen:
			st.Programs.Open = r.N
		case models.ProgramStatusClosed:
			st.Programs.Closed = r.N
		}
	}

	enrollments, err := s.countBy(ctx, &models.Enrollment{}, "status")
	if err != nil {
		return nil, fmt.Errorf("enrollment stats: %w", err)
	}
	for _, r := range enrollments {
		st.Enrollments.Total += r.N
		switch models.EnrollmentStatus(r.Key) {
		case models.EnrollmentPending:
			st.Enrollments.Pending = r.N
		case models.EnrollmentAccepted:
			st.Enrollments.Accepted = r.N
		case models.EnrollmentRejected:
			st.Enrollments.Rejected = r.N
		}
	}
	return &st, nil
}
