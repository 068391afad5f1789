package v1

import (
	"log/slog"
	"net/http"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

type ProgramHandler struct {
	programs ProgramAPI
	log      *slog.Logger
}

func NewProgramHandler(programs ProgramAPI, log *slog.Logger) *ProgramHandler {
	return &ProgramHandler{programs: programs, log: log}
}

func (h *ProgramHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	list, err := h.programs.List(r.Context(), auth.GetUserFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", list, nil)
}

func (h *ProgramHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.programs.Get(r.Context(), auth.GetUserFromCtx(r.Context()), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", p, nil)
}

func (h *ProgramHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(w, err.Error(), nil)
		return
	}
	p, err := h.programs.Create(r.Context(), auth.GetUserFromCtx(r.Context()), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "program created", p, nil)
}

func (h *ProgramHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	upd, err := req.toUpdate()
	if err != nil {
		badRequest(w, err.Error(), nil)
		return
	}
	p, err := h.programs.Update(r.Context(), auth.GetUserFromCtx(r.Context()), id, upd)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "program updated", p, nil)
}

func (h *ProgramHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.programs.Delete(r.Context(), auth.GetUserFromCtx(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "program deleted", nil, nil)
}
