package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/validator"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ints, err := optionalInts(r, "year", "month")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := audit.ListAuditRequest{EditedID: chi.URLParam(r, "employeeID")}
	if ints["year"] == nil || ints["month"] == nil {
		var errs validator.ValidationErrors
		errs.Add("period", "year and month are required")
		response.HandleError(w, errs)
		return
	}
	req.Year, req.Month = *ints["year"], *ints["month"]

	result, err := h.auditService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
