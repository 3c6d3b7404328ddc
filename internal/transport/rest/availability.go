package rest

import (
	"net/http"
	"strconv"

	"github.com/heartmarshall/studyplan-backend/internal/service/planner"
)

func (h *PlannerHandler) getAvailability(w http.ResponseWriter, r *http.Request) {
	week, err := h.svc.Availability(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]weekdayHoursResponse, 0, len(week))
	for weekday, hours := range week {
		out = append(out, weekdayHoursResponse{Weekday: weekday, Hours: hours})
	}
	writeJSON(w, http.StatusOK, out)
}

type putAvailabilityRequest struct {
	Hours float64 `json:"hours"`
}

func (h *PlannerHandler) putAvailability(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(r.PathValue("weekday"))
	if err != nil {
		writeBadRequest(w, "weekday: must be an integer between 0 and 6")
		return
	}

	var req putAvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := h.svc.UpdateAvailability(r.Context(), planner.UpdateAvailabilityInput{
		Weekday: weekday,
		Hours:   req.Hours,
	}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, weekdayHoursResponse{Weekday: weekday, Hours: req.Hours})
}
