package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

type DayOffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Request(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type dayOffHandlerImpl struct {
	dayOffService dayoff.DayOffService
}

func NewDayOffHandler(dayOffService dayoff.DayOffService) DayOffHandler {
	return &dayOffHandlerImpl{dayOffService: dayOffService}
}

func (h *dayOffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req dayoff.CreateDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dayOffService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day off created successfully", result)
}

func (h *dayOffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.dayOffService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day off deleted successfully", nil)
}

func (h *dayOffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.dayOffService.List(r.Context(), dayoff.ListDayOffRequest{
		EmployeeID: optionalString(r, "employee_id"),
		Status:     optionalString(r, "status"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dayOffHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req dayoff.RequestDayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.dayOffService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day off requested successfully", result)
}

func (h *dayOffHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req dayoff.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.dayOffService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Day off request denied"
	if req.Approve {
		message = "Day off request approved"
	}
	response.SuccessWithMessage(w, message, result)
}
