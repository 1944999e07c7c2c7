package handlers

import (
	"net/http"

	"github.com/roamstack/tourism-api/internal/http/response"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

type StatsHandler struct {
	stats postgres.StatsRepo
}

func NewStatsHandler(stats postgres.StatsRepo) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Collect(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to collect stats", "error", err)
		response.InternalError(w, "failed to fetch stats")
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
