package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/madhava-poojari/mentorship-api/internal/utils"
)

const healthTimeout = 2 * time.Second

func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		data := map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"db":        "connected",
		}
		if err := db.Ping(ctx); err != nil {
			data["status"] = "degraded"
			data["db"] = "unreachable"
			utils.WriteJSONResponse(w, http.StatusServiceUnavailable, false, "db unreachable", data, nil)
			return
		}
		utils.WriteJSONResponse(w, http.StatusOK, true, "ok", data, nil)
	}
}
