package cli

import (
	"github.com/cmlabs-hris/worktime-backend-go/internal/app"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
)

type environment struct {
	clock    clock.Clock
	services *app.Services
	closers  []func()
}

// openEnvironment wires the same services the API server runs, against
// the configured store and locker.
func openEnvironment(opts *RootOptions) (*environment, error) {
	cfg := opts.cfg
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.New(loc)

	rates, err := cfg.LoadRates()
	if err != nil {
		return nil, err
	}

	repos, closeStore, err := app.OpenRepositories(cfg, clk)
	if err != nil {
		return nil, err
	}
	locker, closeLocker, err := app.NewLocker(cfg)
	if err != nil {
		closeStore()
		return nil, err
	}

	return &environment{
		clock: clk,
		services: app.NewServices(repos, app.Options{
			Clock:   clk,
			Locker:  locker,
			JWT:     jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration),
			Rates:   rates,
			Workers: cfg.Reconcile.Workers,
		}),
		closers: []func(){closeLocker, closeStore},
	}, nil
}

func (e *environment) close() {
	for _, c := range e.closers {
		c()
	}
}
