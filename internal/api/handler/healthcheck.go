package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger verifica a disponibilidade de uma dependência
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Database: "ok",
			Time:     time.Now().Format(time.RFC3339),
		}
		status := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				response.Status = "degraded"
				response.Database = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, r, status, response)
	})
}
