package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
)

// ActiveEmployeeMiddleware rejects callers whose deactivation took effect
// after their token was issued.
type ActiveEmployeeMiddleware struct {
	employees employee.EmployeeRepository
	clock     clock.Clock
}

func NewActiveEmployeeMiddleware(employees employee.EmployeeRepository, c clock.Clock) *ActiveEmployeeMiddleware {
	return &ActiveEmployeeMiddleware{employees: employees, clock: c}
}

// RequireActiveEmployee checks the caller against the employee registry.
// Tokens outlive deactivation, so the claims alone are not trusted.
func (m *ActiveEmployeeMiddleware) RequireActiveEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := user.CallerFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		emp, err := m.employees.GetByID(r.Context(), caller.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			slog.Error("RequireActiveEmployee lookup error", "error", err, "employee_id", caller.EmployeeID)
			response.HandleError(w, err)
			return
		}

		if !emp.IsActiveAt(m.clock.Now()) {
			response.HandleError(w, auth.ErrAccountInactive)
			return
		}

		next.ServeHTTP(w, r)
	})
}
