package field

import (
	"github.com/fieldops/meterwatch/internal/field/repository"
	"github.com/fieldops/meterwatch/internal/field/service"
	"go.uber.org/fx"
)

var Module = fx.Module("field.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
