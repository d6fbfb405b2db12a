package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/database"
	"vfx-dashboard/internal/features/analytics"
	"vfx-dashboard/internal/features/audit"
	"vfx-dashboard/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Pruner deletes history records past their retention period.
type Pruner interface {
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type retention struct {
	name   string
	pruner Pruner
	keep   time.Duration
}

// prune removes expired records from every target. It keeps going after a
// failure and returns the first error.
func prune(ctx context.Context, logger *zap.Logger, now time.Time, targets []retention) error {
	var firstErr error
	for _, t := range targets {
		if t.keep <= 0 {
			logger.Info("retention disabled", zap.String("collection", t.name))
			continue
		}
		cutoff := now.Add(-t.keep)
		n, err := t.pruner.DeleteBefore(ctx, cutoff)
		if err != nil {
			logger.Error("prune failed", zap.String("collection", t.name), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logger.Info("pruned", zap.String("collection", t.name), zap.Time("before", cutoff), zap.Int64("deleted", n))
	}
	return firstErr
}

var (
	snapshotDays = flag.Int("snapshot-days", 365, "days of stats snapshots to keep, 0 keeps all")
	auditDays    = flag.Int("audit-days", 180, "days of audit logs to keep, 0 keeps all")
)

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

func Cleanup(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *zap.Logger,
	snapshots analytics.SnapshotRepository,
	auditLogs audit.AuditRepository,
) {
	targets := []retention{
		{name: "stats_snapshots", pruner: snapshots, keep: days(*snapshotDays)},
		{name: "audit_logs", pruner: auditLogs, keep: days(*auditDays)},
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				defer cancel()

				code := 0
				if err := prune(ctx, logger, time.Now(), targets); err != nil {
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error("failed to shutdown", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

func main() {
	flag.Parse()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			analytics.NewSnapshotRepository,
			audit.NewAuditRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Cleanup),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	sig := <-app.Wait()
	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Println(err)
	}
	os.Exit(sig.ExitCode)
}
