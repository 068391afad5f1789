package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/madhava-poojari/mentorship-api/internal/service"
	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

// writeError maps service errors onto HTTP statuses. Anything that is not a
// service error is logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		utils.WriteJSONResponse(w, statusFor(svcErr.Kind), false, svcErr.Message, nil, nil)
		return
	}
	log.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "internal server error", nil, nil)
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(kind, service.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(kind, service.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func badRequest(w http.ResponseWriter, message string, err error) {
	utils.WriteJSONResponse(w, http.StatusBadRequest, false, message, nil, err)
}

// pathID returns the named URL parameter when it is a UUID and writes a 400
// otherwise.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "Invalid "+name, nil, nil)
		return "", false
	}
	return id, true
}

// queryID reads an optional UUID query parameter.
func queryID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.URL.Query().Get(name)
	if id == "" {
		return "", true
	}
	if _, err := uuid.Parse(id); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "Invalid "+name, nil, nil)
		return "", false
	}
	return id, true
}
