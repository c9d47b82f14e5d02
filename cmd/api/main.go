package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/worktime-backend-go/internal/app"
	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/worktime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc)

	rates, err := cfg.LoadRates()
	if err != nil {
		return err
	}

	repos, closeStore, err := app.OpenRepositories(cfg, clk)
	if err != nil {
		return err
	}
	defer closeStore()

	locker, closeLocker, err := app.NewLocker(cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	services := app.NewServices(repos, app.Options{
		Clock:   clk,
		Locker:  locker,
		JWT:     JWTService,
		Rates:   rates,
		Workers: cfg.Reconcile.Workers,
	})

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:                cfg.App.Env,
			Version:            version,
			CORSAllowedOrigins: cfg.App.CORSAllowedOrigins,
			LogLevel:           cfg.SlogLevel(),
		},
		JWTService,
		middleware.NewActiveEmployeeMiddleware(repos.Employees, clk),
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, services.Auth),
			Shift:      appHTTP.NewShiftHandler(services.Shift),
			Employee:   appHTTP.NewEmployeeHandler(services.Employee),
			Schedule:   appHTTP.NewScheduleHandler(services.Schedule),
			Attendance: appHTTP.NewAttendanceHandler(services.Attendance),
			Stats:      appHTTP.NewStatsHandler(services.Stats),
			Payroll:    appHTTP.NewPayrollHandler(services.Payroll),
			DayOff:     appHTTP.NewDayOffHandler(services.DayOff),
			Audit:      appHTTP.NewAuditHandler(services.Audit),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler(ctx)
	cron.NewReconcileJobs(services.Attendance, clk, cfg.Reconcile.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "store", cfg.App.StoreDriver, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
