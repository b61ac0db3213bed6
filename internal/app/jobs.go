package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithParser(cronParser), cron.WithLocation(loc))

	spec := a.appConfig.Catalog.RefreshCron
	if spec == "" {
		return
	}
	_, err = a.sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := a.catalog.Refresh(ctx); err != nil {
			zap.L().Error("scheduled catalog refresh failed", zap.Error(err))
			return
		}
		zap.L().Info("scheduled catalog refresh done",
			zap.Int("products", len(a.catalog.Products())),
			zap.Bool("fallback", a.catalog.LoadError() != ""),
		)
	})
	if err != nil {
		zap.S().Errorf("invalid catalog refresh cron %q: %v", spec, err)
	}
}

// StartBackgroundJobs kicks off the initial catalog load and starts the
// scheduler.
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	go func() {
		if err := a.catalog.EnsureInitialized(ctx); err != nil {
			zap.L().Error("catalog initialization failed", zap.Error(err))
		}
	}()
	a.sched.Start()
}
