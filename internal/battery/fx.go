package battery

import (
	"github.com/fieldops/meterwatch/internal/battery/repository"
	"github.com/fieldops/meterwatch/internal/battery/service"
	"go.uber.org/fx"
)

var Module = fx.Module("battery.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
