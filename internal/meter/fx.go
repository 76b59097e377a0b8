package meter

import (
	"github.com/fieldops/meterwatch/internal/meter/repository"
	"github.com/fieldops/meterwatch/internal/meter/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meter.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
