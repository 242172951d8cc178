package observability

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/marketbay/marketbay/pkg/httputil"
)

// HealthResponse reports overall service health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler reports liveness plus database reachability.
func HealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Database: "ok"}
		status := http.StatusOK

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}

		httputil.WriteJSON(w, status, resp)
	}
}
