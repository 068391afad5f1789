package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/madhava-poojari/mentorship-api/internal/auth"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

type FormHandler struct {
	forms   FormAPI
	uploads UploadAPI
	log     *slog.Logger
}

func NewFormHandler(forms FormAPI, uploads UploadAPI, log *slog.Logger) *FormHandler {
	return &FormHandler{forms: forms, uploads: uploads, log: log}
}

func (h *FormHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathID(w, r, "programId")
	if !ok {
		return
	}
	fields, err := h.forms.Fields(r.Context(), auth.GetUserFromCtx(r.Context()), programID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", fields, nil)
}

func (h *FormHandler) AddFields(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathID(w, r, "programId")
	if !ok {
		return
	}
	var req addFieldsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	fields, err := h.forms.AddFields(r.Context(), auth.GetUserFromCtx(r.Context()), programID, toNewFields(req.Fields))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "form fields created", fields, nil)
}

func (h *FormHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(w, formatValidationError(err), nil)
		return
	}
	f, err := h.forms.UpdateField(r.Context(), auth.GetUserFromCtx(r.Context()), id, req.toUpdate())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "form field updated", f, nil)
}

func (h *FormHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.forms.DeleteField(r.Context(), auth.GetUserFromCtx(r.Context()), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "form field deleted", nil, nil)
}

// Upload accepts a multipart "file" part and returns where it was stored. The
// returned path is what a file response records.
func (h *FormHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.uploads.MaxBytes() + multipartOverhead
	if r.ContentLength > limit {
		utils.WriteJSONResponse(w, http.StatusRequestEntityTooLarge, false, "File too large", nil, nil)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			utils.WriteJSONResponse(w, http.StatusRequestEntityTooLarge, false, "File too large", nil, nil)
		case errors.Is(err, http.ErrMissingFile):
			badRequest(w, "No file uploaded", nil)
		default:
			badRequest(w, "Invalid multipart form", err)
		}
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	up, err := h.uploads.Save(r.Context(), auth.GetUserFromCtx(r.Context()), header.Filename, header.Size, file)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "file uploaded", up, nil)
}
