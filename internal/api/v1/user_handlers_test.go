package v1

import (
	"net/http"
	"testing"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetSelfProfile(t *testing.T) {
	ta := newTestAPI(t)
	ta.users.On("Me", mock.Anything, applicant).Return(applicant, nil).Once()
	ta.users.On("MyEnrollments", mock.Anything, applicant).Return([]models.Enrollment{{ID: enrollmentID}}, nil).Once()

	rec := ta.do(t, applicant, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), applicant.Email)

	rec = ta.do(t, applicant, http.MethodGet, "/users/me/enrollments", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), enrollmentID)
}

func TestGetUserForAdmin(t *testing.T) {
	ta := newTestAPI(t)
	ta.users.On("Get", mock.Anything, admin, applicant.ID).
		Return(nil, &service.Error{Kind: service.ErrForbidden, Message: "You can only view users enrolled in your programs"}).Once()
	ta.users.On("Enrollments", mock.Anything, admin, applicant.ID).Return([]models.Enrollment{}, nil).Once()

	assert.Equal(t, http.StatusForbidden, ta.do(t, admin, http.MethodGet, "/users/"+applicant.ID, nil).Code)
	assert.Equal(t, http.StatusOK, ta.do(t, admin, http.MethodGet, "/users/"+applicant.ID+"/enrollments", nil).Code)
	assert.Equal(t, http.StatusForbidden, ta.do(t, applicant, http.MethodGet, "/users/"+admin.ID, nil).Code)
}
