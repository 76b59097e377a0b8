package seed

import (
	"github.com/fieldops/meterwatch/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module seeds demo data when SEED_DEMO is set. It runs after migrations.
var Module = fx.Module("seed",
	fx.Invoke(func(cfg config.Config, db *gorm.DB, log *zap.Logger) error {
		if !cfg.SeedDemo {
			return nil
		}
		if err := EnsureDemoData(db); err != nil {
			return err
		}
		log.Named("seed").Info("demo data ensured")
		return nil
	}),
)
