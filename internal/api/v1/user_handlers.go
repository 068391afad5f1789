package v1

import (
	"log/slog"
	"net/http"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

type UserHandler struct {
	users UserAPI
	log   *slog.Logger
}

func NewUserHandler(users UserAPI, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Me(r.Context(), auth.GetUserFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", u, nil)
}

func (h *UserHandler) GetSelfEnrollments(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.MyEnrollments(r.Context(), auth.GetUserFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", list, nil)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := h.users.Get(r.Context(), auth.GetUserFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", u, nil)
}

func (h *UserHandler) GetUserEnrollments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	list, err := h.users.Enrollments(r.Context(), auth.GetUserFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", list, nil)
}
