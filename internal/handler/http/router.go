package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
)

// RouterConfig carries the deployment settings the router needs.
type RouterConfig struct {
	Env                string
	Version            string
	CORSAllowedOrigins []string
	LogLevel           slog.Level
}

// Handlers groups the route handlers mounted under /api/v1.
type Handlers struct {
	Auth       AuthHandler
	Shift      ShiftHandler
	Employee   EmployeeHandler
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Stats      StatsHandler
	Payroll    PayrollHandler
	DayOff     DayOffHandler
	Audit      AuditHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, active *middleware.ActiveEmployeeMiddleware, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worktime"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(active.RequireActiveEmployee)
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Route("/shifts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/", h.Shift.List)
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/{code}", h.Shift.GetByCode)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{code}", h.Shift.Update)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Post("/{id}/deactivate", h.Employee.Deactivate)
				})
			})

			// Scope checks happen in the service: employees may read their
			// own schedule.
			r.Route("/schedules/{employeeID}", func(r chi.Router) {
				r.Get("/", h.Schedule.GetSchedule)
				r.Get("/calendar.ics", h.Schedule.Calendar)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleAssign))
					r.Post("/assign", h.Schedule.AssignShift)
					r.Delete("/{date}", h.Schedule.DeleteScheduleEntry)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceRecord))
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceEdit)).Patch("/{id}/details", h.Attendance.UpdatePositionDetails)
			})

			r.Get("/stats", h.Stats.GetStats)

			r.Route("/payroll/salaries", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", h.Payroll.ListSalaries)
				r.With(middleware.RequirePermission(user.PermissionPayrollCalculate)).Post("/", h.Payroll.CalculateSalary)
			})

			r.With(middleware.AdminOnly).Get("/audit/{employeeID}", h.Audit.List)

			r.Route("/day-offs", func(r chi.Router) {
				r.Get("/", h.DayOff.List)
				r.With(middleware.RequirePermission(user.PermissionDayOffRequest)).Post("/requests", h.DayOff.Request)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.DayOff.Create)
					r.Delete("/{id}", h.DayOff.Delete)
					r.With(middleware.RequirePermission(user.PermissionDayOffDecide)).Post("/{id}/decision", h.DayOff.Decide)
				})
			})
		})
	})
	return r
}
