package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics carries the service-level prometheus counters.
type Metrics struct {
	MarkTestedTotal   prometheus.Counter
	ImportRowsTotal   prometheus.Counter
	ImportFilesTotal  *prometheus.CounterVec
	ExportFilesTotal  prometheus.Counter
}

func New() (*Metrics, error) {
	m := &Metrics{
		MarkTestedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meterwatch_mark_tested_total",
			Help: "Number of mark-tested transitions recorded.",
		}),
		ImportRowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meterwatch_import_rows_total",
			Help: "Number of meter rows inserted by spreadsheet imports.",
		}),
		ImportFilesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meterwatch_import_files_total",
			Help: "Number of spreadsheet import attempts by outcome.",
		}, []string{"outcome"}),
		ExportFilesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meterwatch_export_files_total",
			Help: "Number of CSV exports served.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.MarkTestedTotal,
		m.ImportRowsTotal,
		m.ImportFilesTotal,
		m.ExportFilesTotal,
	} {
		if err := prometheus.Register(c); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				_ = already
				continue
			}
			return nil, err
		}
	}

	return m, nil
}

// Module wires the prometheus counters for the application.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
