package v1

import (
	"net/http"
	"testing"

	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const fieldID = "66666666-6666-4666-8666-666666666666"

func TestCreateEnrollment(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("Create", mock.Anything, applicant, mock.MatchedBy(func(in service.EnrollmentInput) bool {
		return in.ProgramID == programID &&
			len(in.Responses) == 1 &&
			in.Responses[0].FormFieldID == fieldID &&
			*in.Responses[0].TextResponse == "I want to learn"
	})).Return(&models.Enrollment{ID: enrollmentID, Status: models.EnrollmentPending}, nil).Once()

	rec := ta.do(t, applicant, http.MethodPost, "/enrollments", map[string]interface{}{
		"mentorship_program_id": programID,
		"responses": []map[string]interface{}{
			{"form_field_id": fieldID, "text_response": "I want to learn"},
		},
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateEnrollmentValidatesIDs(t *testing.T) {
	ta := newTestAPI(t)
	rec := ta.do(t, applicant, http.MethodPost, "/enrollments", map[string]interface{}{
		"mentorship_program_id": "p1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Field validation for 'mentorship_program_id' failed on the 'uuid' tag", decodeEnvelope(t, rec).Message)
}

func TestCreateEnrollmentConflict(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("Create", mock.Anything, applicant, mock.Anything).
		Return(nil, &service.Error{Kind: service.ErrConflict, Message: "You are already enrolled in this program"}).Once()

	rec := ta.do(t, applicant, http.MethodPost, "/enrollments", map[string]interface{}{"mentorship_program_id": programID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You are already enrolled in this program", decodeEnvelope(t, rec).Message)
}

func TestListEnrollmentsProgramFilter(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("List", mock.Anything, admin, programID).Return([]models.Enrollment{}, nil).Once()

	rec := ta.do(t, admin, http.MethodGet, "/enrollments?program_id="+programID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, admin, http.MethodGet, "/enrollments?program_id=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProgramEnrollmentsIsStaffOnly(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("ListForProgram", mock.Anything, admin, programID).Return([]models.Enrollment{}, nil).Once()

	assert.Equal(t, http.StatusOK, ta.do(t, admin, http.MethodGet, "/enrollments/program/"+programID, nil).Code)
	assert.Equal(t, http.StatusForbidden, ta.do(t, applicant, http.MethodGet, "/enrollments/program/"+programID, nil).Code)
}

func TestAcceptAndRejectEnrollment(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("Decide", mock.Anything, admin, enrollmentID, models.EnrollmentAccepted).
		Return(&models.Enrollment{ID: enrollmentID, Status: models.EnrollmentAccepted}, nil).Once()
	ta.enrollments.On("Decide", mock.Anything, admin, enrollmentID, models.EnrollmentRejected).
		Return(&models.Enrollment{ID: enrollmentID, Status: models.EnrollmentRejected}, nil).Once()

	rec := ta.do(t, admin, http.MethodPut, "/enrollments/"+enrollmentID+"/accept", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "enrollment accepted", decodeEnvelope(t, rec).Message)

	rec = ta.do(t, admin, http.MethodPut, "/enrollments/"+enrollmentID+"/reject", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAcceptEnrollmentProgramFull(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("Decide", mock.Anything, admin, enrollmentID, models.EnrollmentAccepted).
		Return(nil, &service.Error{Kind: service.ErrBadRequest, Message: "Program has reached maximum participants"}).Once()

	rec := ta.do(t, admin, http.MethodPut, "/enrollments/"+enrollmentID+"/accept", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Program has reached maximum participants", decodeEnvelope(t, rec).Message)
}

func TestWithdrawEnrollment(t *testing.T) {
	ta := newTestAPI(t)
	ta.enrollments.On("Withdraw", mock.Anything, applicant, enrollmentID).Return(nil).Once()

	rec := ta.do(t, applicant, http.MethodDelete, "/enrollments/"+enrollmentID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
