package station

import (
	"github.com/fieldops/meterwatch/internal/station/repository"
	"github.com/fieldops/meterwatch/internal/station/service"
	"go.uber.org/fx"
)

var Module = fx.Module("station.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
