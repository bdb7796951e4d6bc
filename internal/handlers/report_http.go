package handlers

import (
	"net/http"
	"strings"

	"eligue-assistance/internal/service"
	"eligue-assistance/internal/utils"
)

type ReportsHTTP struct {
	svc *service.ReportService
}

func NewReportsHTTP(s *service.ReportService) *ReportsHTTP { return &ReportsHTTP{svc: s} }

// GET /api/reports/technicians?q=
// Technician leaderboard. The q filter is applied after ranking, so a
// filtered row keeps the rank it holds in the full table.
func (h *ReportsHTTP) Technicians() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		rows, err := h.svc.TechnicianSummary(r.Context(), q)
		if err != nil {
			serviceError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
	}
}
