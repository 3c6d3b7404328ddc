package rest

import (
	"net/http"
)

func (h *PlannerHandler) generatePlan(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GeneratePlan(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlanReportResponse(report))
}
