package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

type StatsHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandlerImpl{statsService: statsService}
}

func (h *statsHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	ints, err := optionalInts(r, "year", "month")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statsService.GetStats(r.Context(), stats.GetStatsRequest{
		EmployeeID: optionalString(r, "employee_id"),
		Department: optionalString(r, "department"),
		Year:       ints["year"],
		Month:      ints["month"],
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
