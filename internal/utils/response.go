package utils

import (
	"encoding/json"
	"net/http"

	"github.com/madhava-poojari/mentorship-api/internal/models"
)

// WriteJSONResponse writes the standard envelope. errVal may be an error, a
// string or any JSON-encodable value.
func WriteJSONResponse(w http.ResponseWriter, status int, success bool, message string, data interface{}, errVal interface{}) {
	if e, ok := errVal.(error); ok {
		errVal = e.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Success: success,
		Message: message,
		Data:    data,
		Error:   errVal,
	})
}
