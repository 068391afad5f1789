package v1

import (
	"log/slog"
	"net/http"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

type EnrollmentHandler struct {
	enrollments EnrollmentAPI
	log         *slog.Logger
}

func NewEnrollmentHandler(enrollments EnrollmentAPI, log *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, log: log}
}

func (h *EnrollmentHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	programID, ok := queryID(w, r, "program_id")
	if !ok {
		return
	}
	list, err := h.enrollments.List(r.Context(), auth.GetUserFromCtx(r.Context()), programID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", list, nil)
}

func (h *EnrollmentHandler) ListProgramEnrollments(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathID(w, r, "programId")
	if !ok {
		return
	}
	list, err := h.enrollments.ListForProgram(r.Context(), auth.GetUserFromCtx(r.Context()), programID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", list, nil)
}

func (h *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.enrollments.Get(r.Context(), auth.GetUserFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", e, nil)
}

func (h *EnrollmentHandler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	var req createEnrollmentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	e, err := h.enrollments.Create(r.Context(), auth.GetUserFromCtx(r.Context()), req.toInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "enrollment created", e, nil)
}

func (h *EnrollmentHandler) WithdrawEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.enrollments.Withdraw(r.Context(), auth.GetUserFromCtx(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "enrollment withdrawn", nil, nil)
}

func (h *EnrollmentHandler) AcceptEnrollment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.EnrollmentAccepted)
}

func (h *EnrollmentHandler) RejectEnrollment(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.EnrollmentRejected)
}

func (h *EnrollmentHandler) decide(w http.ResponseWriter, r *http.Request, status models.EnrollmentStatus) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.enrollments.Decide(r.Context(), auth.GetUserFromCtx(r.Context()), id, status)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "enrollment "+string(status), e, nil)
}
