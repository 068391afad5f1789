package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/models"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

type SuperadminHandler struct {
	admin       SuperadminAPI
	enrollments EnrollmentAPI
	log         *slog.Logger
}

func NewSuperadminHandler(admin SuperadminAPI, enrollments EnrollmentAPI, log *slog.Logger) *SuperadminHandler {
	return &SuperadminHandler{admin: admin, enrollments: enrollments, log: log}
}

func (h *SuperadminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", stats, nil)
}

func (h *SuperadminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := models.Role(r.URL.Query().Get("role"))
	if role != "" && !role.Valid() {
		badRequest(w, "Invalid role", nil)
		return
	}
	users, err := h.admin.Users(r.Context(), role)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", users, nil)
}

func (h *SuperadminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := h.admin.User(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", u, nil)
}

func (h *SuperadminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	u, err := h.admin.ChangeRole(r.Context(), auth.GetUserFromCtx(r.Context()), id, req.Role)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "role updated", u, nil)
}

func (h *SuperadminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteUser(r.Context(), auth.GetUserFromCtx(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "user deleted", nil, nil)
}

func (h *SuperadminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admin.Admins(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", admins, nil)
}

func (h *SuperadminHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	status := models.ProgramStatus(r.URL.Query().Get("status"))
	if status != "" && status != models.ProgramStatusOpen && status != models.ProgramStatusClosed {
		badRequest(w, "Invalid status", nil)
		return
	}
	programs, err := h.admin.Programs(r.Context(), status)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", programs, nil)
}

func (h *SuperadminHandler) CloseProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.admin.CloseProgram(r.Context(), auth.GetUserFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "program closed", p, nil)
}

func (h *SuperadminHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteProgram(r.Context(), auth.GetUserFromCtx(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "program deleted", nil, nil)
}

func (h *SuperadminHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	status := models.EnrollmentStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		badRequest(w, "Invalid status", nil)
		return
	}
	programID, ok := queryID(w, r, "program_id")
	if !ok {
		return
	}
	list, err := h.admin.Enrollments(r.Context(), status, programID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", list, nil)
}

func (h *SuperadminHandler) BulkUpdateEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	n, err := h.enrollments.BulkSetStatus(r.Context(), auth.GetUserFromCtx(r.Context()), req.EnrollmentIDs, req.Status)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "enrollments updated", map[string]int{"updated": n}, nil)
}

func (h *SuperadminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}
	entries, err := h.admin.Audit(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", entries, nil)
}
