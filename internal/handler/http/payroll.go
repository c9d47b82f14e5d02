package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	CalculateSalary(w http.ResponseWriter, r *http.Request)
	ListSalaries(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CalculateSalary(r.Context(), req)
	if err != nil {
		slog.Error("CalculateSalary service error", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary calculated successfully", result)
}

func (h *payrollHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	ints, err := optionalInts(r, "year", "month")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListSalaries(r.Context(), payroll.ListSalariesRequest{
		EmployeeID: optionalString(r, "employee_id"),
		Year:       ints["year"],
		Month:      ints["month"],
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
