package history

import (
	"github.com/fieldops/meterwatch/internal/history/repository"
	"github.com/fieldops/meterwatch/internal/history/service"
	"go.uber.org/fx"
)

var Module = fx.Module("history.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
