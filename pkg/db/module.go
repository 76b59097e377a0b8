package db

import (
	"context"
	"time"

	"github.com/fieldops/meterwatch/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)

	if cfg.DBType == "sqlite" {
		// Better behavior under concurrent readers/writers.
		if err := conn.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			log.Warn("sqlite WAL pragma failed", zap.Error(err))
		}
		if err := conn.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
			log.Warn("sqlite synchronous pragma failed", zap.Error(err))
		}
		if err := conn.Exec("PRAGMA busy_timeout=5000").Error; err != nil {
			log.Warn("sqlite busy_timeout pragma failed", zap.Error(err))
		}
	}

	log.Info("database connected", zap.String("type", cfg.DBType))
	return conn, nil
}

func registerHooks(lc fx.Lifecycle, conn *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}

// Module wires the gorm connection for the application.
var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(registerHooks),
)
