// Package app assembles repositories and services for the API server and
// the operator CLI.
package app

import (
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/worktime-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/worktime-backend-go/internal/service/access"
	attendanceService "github.com/cmlabs-hris/worktime-backend-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/worktime-backend-go/internal/service/audit"
	authService "github.com/cmlabs-hris/worktime-backend-go/internal/service/auth"
	dayoffService "github.com/cmlabs-hris/worktime-backend-go/internal/service/dayoff"
	employeeService "github.com/cmlabs-hris/worktime-backend-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/worktime-backend-go/internal/service/payroll"
	scheduleService "github.com/cmlabs-hris/worktime-backend-go/internal/service/schedule"
	shiftService "github.com/cmlabs-hris/worktime-backend-go/internal/service/shift"
	statsService "github.com/cmlabs-hris/worktime-backend-go/internal/service/stats"
)

// lockTTL bounds how long a crashed holder keeps an employee locked.
const lockTTL = 30 * time.Second

// Repositories is the storage side of the application.
type Repositories struct {
	Tx          database.Transactor
	Employees   employee.EmployeeRepository
	Shifts      shift.ShiftRepository
	Schedules   schedule.ScheduleRepository
	Attendances attendance.AttendanceRepository
	Stats       stats.StatsRepository
	DayOffs     dayoff.DayOffRepository
	Salaries    payroll.SalaryRepository
	Audit       audit.AuditRepository
	Tokens      auth.TokenRepository
}

func NewMemoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Tx:          store,
		Employees:   store.Employees(),
		Shifts:      store.Shifts(),
		Schedules:   store.Schedules(),
		Attendances: store.Attendances(),
		Stats:       store.Stats(),
		DayOffs:     store.DayOffs(),
		Salaries:    store.Salaries(),
		Audit:       store.Audit(),
		Tokens:      store.Tokens(),
	}
}

// NewPostgresRepositories reads DATE columns back in loc.
func NewPostgresRepositories(db *database.DB, loc *time.Location) *Repositories {
	return &Repositories{
		Tx:          postgresql.NewTransactor(db),
		Employees:   postgresql.NewEmployeeRepository(db),
		Shifts:      postgresql.NewShiftRepository(db),
		Schedules:   postgresql.NewScheduleRepository(db, loc),
		Attendances: postgresql.NewAttendanceRepository(db, loc),
		Stats:       postgresql.NewStatsRepository(db),
		DayOffs:     postgresql.NewDayOffRepository(db, loc),
		Salaries:    postgresql.NewSalaryRepository(db),
		Audit:       postgresql.NewAuditRepository(db),
		Tokens:      postgresql.NewTokenRepository(db),
	}
}

// OpenRepositories connects the store selected by STORE_DRIVER and, for
// PostgreSQL, applies pending migrations. The returned func releases the
// connection pool.
func OpenRepositories(cfg *config.Config, c clock.Clock) (*Repositories, func(), error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		slog.Warn("Using in-memory store, data is lost on exit")
		store := memory.NewStore()
		store.SetClock(c.Now)
		return NewMemoryRepositories(store), func() {}, nil

	case config.StoreDriverPostgres:
		db, err := OpenDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewPostgresRepositories(db, c.Location()), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.App.StoreDriver)
}

// OpenDatabase connects to PostgreSQL without migrating.
func OpenDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("Database connected", "host", cfg.Database.Host, "name", cfg.Database.Name)
	return db, nil
}

// NewLocker returns the Redis-backed locker when REDIS_ADDR is set and the
// in-process one otherwise.
func NewLocker(cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.Redis.Addr == "" {
		return lock.NewLocal(), func() {}, nil
	}
	rdb, err := lock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	return lock.NewRedis(rdb, lockTTL), closeRedis(rdb), nil
}

func closeRedis(rdb *goredis.Client) func() {
	return func() {
		if err := rdb.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
}

// Options carries the non-storage collaborators of the services.
type Options struct {
	Clock   clock.Clock
	Locker  lock.Locker
	JWT     jwt.Service
	Rates   attendance.CommissionRates
	Workers int
}

// Services is the application layer.
type Services struct {
	Access     *access.Resolver
	Audit      audit.AuditService
	Auth       auth.AuthService
	Shift      shift.ShiftService
	Employee   employee.EmployeeService
	Schedule   schedule.ScheduleService
	Attendance *attendanceService.AttendanceServiceImpl
	Stats      stats.StatsService
	Payroll    *payrollService.PayrollServiceImpl
	DayOff     *dayoffService.DayOffServiceImpl
}

func NewServices(repos *Repositories, opts Options) *Services {
	resolver := access.NewResolver(repos.Employees)
	guard := access.NewGuard(opts.Locker, repos.Tx, repos.Employees)
	ledger := statsService.NewLedger(repos.Stats)

	return &Services{
		Access:   resolver,
		Audit:    auditService.NewAuditService(repos.Audit, resolver),
		Auth:     authService.NewAuthService(repos.Tx, repos.Employees, repos.Tokens, opts.JWT, opts.Clock),
		Shift:    shiftService.NewShiftService(repos.Shifts),
		Employee: employeeService.NewEmployeeService(repos.Employees, resolver, guard, opts.Clock),
		Schedule: scheduleService.NewScheduleService(scheduleService.Dependencies{
			Schedules:   repos.Schedules,
			Shifts:      repos.Shifts,
			DayOffs:     repos.DayOffs,
			Attendances: repos.Attendances,
			Audit:       repos.Audit,
			Ledger:      ledger,
			Access:      resolver,
			Guard:       guard,
			Clock:       opts.Clock,
		}),
		Attendance: attendanceService.NewAttendanceService(attendanceService.Dependencies{
			Attendances: repos.Attendances,
			Schedules:   repos.Schedules,
			Employees:   repos.Employees,
			Audit:       repos.Audit,
			Ledger:      ledger,
			Access:      resolver,
			Guard:       guard,
			Clock:       opts.Clock,
			Rates:       opts.Rates,
			Workers:     opts.Workers,
		}),
		Stats: statsService.NewStatsService(repos.Stats, repos.Employees, resolver),
		Payroll: payrollService.NewPayrollService(payrollService.Dependencies{
			Salaries:    repos.Salaries,
			Stats:       repos.Stats,
			Attendances: repos.Attendances,
			DayOffs:     repos.DayOffs,
			Employees:   repos.Employees,
			Audit:       repos.Audit,
			Access:      resolver,
			Clock:       opts.Clock,
		}),
		DayOff: dayoffService.NewDayOffService(repos.DayOffs, repos.Employees, repos.Audit, resolver, guard, opts.Clock),
	}
}
