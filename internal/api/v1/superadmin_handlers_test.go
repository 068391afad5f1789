package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("Stats", mock.Anything).Return(&models.PlatformStats{
		Users:       models.UserStats{Total: 10, Admins: 2, Superadmins: 1},
		Enrollments: models.EnrollmentStats{Total: 4, Accepted: 1},
	}, nil).Once()

	rec := ta.do(t, superadmin, http.MethodGet, "/superadmin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"total":10`)
}

func TestListUsersRoleFilter(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("Users", mock.Anything, models.RoleAdmin).Return([]models.User{*admin}, nil).Once()

	assert.Equal(t, http.StatusOK, ta.do(t, superadmin, http.MethodGet, "/superadmin/users?role=admin", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ta.do(t, superadmin, http.MethodGet, "/superadmin/users?role=owner", nil).Code)
}

func TestChangeUserRole(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("ChangeRole", mock.Anything, superadmin, applicant.ID, models.RoleAdmin).
		Return(&models.User{ID: applicant.ID, Role: models.RoleAdmin}, nil).Once()

	rec := ta.do(t, superadmin, http.MethodPatch, "/superadmin/users/"+applicant.ID+"/role", map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, superadmin, http.MethodPatch, "/superadmin/users/"+applicant.ID+"/role", map[string]string{"role": "root"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSuperadminRefused(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("DeleteUser", mock.Anything, superadmin, admin.ID).
		Return(&service.Error{Kind: service.ErrForbidden, Message: "Superadmin users cannot be deleted"}).Once()

	rec := ta.do(t, superadmin, http.MethodDelete, "/superadmin/users/"+admin.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCloseProgramAlreadyClosed(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("CloseProgram", mock.Anything, superadmin, programID).
		Return(nil, &service.Error{Kind: service.ErrBadRequest, Message: "Program is already closed"}).Once()

	rec := ta.do(t, superadmin, http.MethodPatch, "/superadmin/programs/"+programID+"/close", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Program is already closed", decodeEnvelope(t, rec).Message)
}

func TestListSuperadminEnrollmentsFilters(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("Enrollments", mock.Anything, models.EnrollmentPending, programID).Return([]models.Enrollment{}, nil).Once()

	rec := ta.do(t, superadmin, http.MethodGet, "/superadmin/enrollments?status=pending&program_id="+programID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, superadmin, http.MethodGet, "/superadmin/enrollments?status=waitlisted", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkUpdateEnrollmentStatus(t *testing.T) {
	ta := newTestAPI(t)
	ids := []string{enrollmentID, fieldID}
	ta.enrollments.On("BulkSetStatus", mock.Anything, superadmin, ids, models.EnrollmentAccepted).Return(2, nil).Once()

	rec := ta.do(t, superadmin, http.MethodPost, "/superadmin/enrollments/status", map[string]interface{}{
		"enrollment_ids": ids,
		"status":         "accepted",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]int
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, 2, data["updated"])
}

func TestBulkUpdateEnrollmentStatusRequiresIDs(t *testing.T) {
	ta := newTestAPI(t)
	rec := ta.do(t, superadmin, http.MethodPost, "/superadmin/enrollments/status", map[string]interface{}{
		"enrollment_ids": []string{},
		"status":         "accepted",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAuditLimit(t *testing.T) {
	ta := newTestAPI(t)
	ta.superadmin.On("Audit", mock.Anything, 50).Return([]models.AuditEntry{}, nil).Once()
	ta.superadmin.On("Audit", mock.Anything, 0).Return([]models.AuditEntry{}, nil).Once()

	assert.Equal(t, http.StatusOK, ta.do(t, superadmin, http.MethodGet, "/superadmin/audit?limit=50", nil).Code)
	assert.Equal(t, http.StatusOK, ta.do(t, superadmin, http.MethodGet, "/superadmin/audit", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ta.do(t, superadmin, http.MethodGet, "/superadmin/audit?limit=lots", nil).Code)
}
