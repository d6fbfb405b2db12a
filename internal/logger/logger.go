package logger

import (
	"context"

	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/database"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Console output follows the
// environment; warnings and errors are also persisted to MongoDB.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	baseLogger, err := NewConsoleLogger(cfg)
	if err != nil {
		return nil, err
	}

	dbWriter := NewDBLogWriter(mongodb.DB.Collection("logs"), cfg.AppId)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = baseLogger.Sync()
			return dbWriter.Close(ctx)
		},
	})

	finalCore := NewDBCore(baseLogger.Core(), dbWriter, zapcore.WarnLevel)
	return zap.New(finalCore, zap.AddCaller()), nil
}

// NewConsoleLogger returns the stdout logger used before the database is
// reachable and by the command line tools.
func NewConsoleLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Caller must be enabled for the DB core to record the function name
	zapConfig.EncoderConfig.FunctionKey = "func"

	return zapConfig.Build()
}
