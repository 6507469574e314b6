package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// getDriverStats handles GET /api/drivers/{driverName}/stats.
// The driver name is matched verbatim against daily-log records.
func (s *Server) getDriverStats(w http.ResponseWriter, r *http.Request) {
	driverName := chi.URLParam(r, "driverName")

	stats, err := s.stats.ForDriver(r.Context(), driverName)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
