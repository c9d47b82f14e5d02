package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	AssignShift(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	DeleteScheduleEntry(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// AssignShift places one shift on several dates. Dates succeed or fail
// independently, so a partial result is still 200.
func (h *scheduleHandlerImpl) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.scheduleService.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(result.Succeeded) == 0 {
		response.SuccessWithMessage(w, "No dates were assigned", result)
		return
	}
	response.Created(w, "Shift assigned successfully", result)
}

func (h *scheduleHandlerImpl) scheduleRequest(r *http.Request) (schedule.GetScheduleRequest, error) {
	ints, err := optionalInts(r, "year", "month")
	if err != nil {
		return schedule.GetScheduleRequest{}, err
	}
	return schedule.GetScheduleRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Department: optionalString(r, "department"),
		Year:       ints["year"],
		Month:      ints["month"],
		Date:       optionalString(r, "date"),
	}, nil
}

func (h *scheduleHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	req, err := h.scheduleRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.GetSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req, err := h.scheduleRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	body, err := h.scheduleService.Calendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Calendar(w, req.EmployeeID+".ics", body)
}

func (h *scheduleHandlerImpl) DeleteScheduleEntry(w http.ResponseWriter, r *http.Request) {
	req := schedule.DeleteScheduleEntryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       chi.URLParam(r, "date"),
	}

	if err := h.scheduleService.DeleteScheduleEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule entry deleted successfully", nil)
}
