package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	"github.com/fieldops/meterwatch/internal/config"
	dashboarddomain "github.com/fieldops/meterwatch/internal/dashboard/domain"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	importerdomain "github.com/fieldops/meterwatch/internal/importer/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	fieldSvc     fielddomain.Service
	batterySvc   batterydomain.Service
	meterSvc     meterdomain.Service
	historySvc   historydomain.Service
	dashboardSvc dashboarddomain.Service
	stationSvc   stationdomain.Service
	importerSvc  importerdomain.Service
	reasons      *config.ReasonConfigHolder
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	FieldSvc     fielddomain.Service
	BatterySvc   batterydomain.Service
	MeterSvc     meterdomain.Service
	HistorySvc   historydomain.Service
	DashboardSvc dashboarddomain.Service
	StationSvc   stationdomain.Service
	ImporterSvc  importerdomain.Service
	Reasons      *config.ReasonConfigHolder
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		fieldSvc:     p.FieldSvc,
		batterySvc:   p.BatterySvc,
		meterSvc:     p.MeterSvc,
		historySvc:   p.HistorySvc,
		dashboardSvc: p.DashboardSvc,
		stationSvc:   p.StationSvc,
		importerSvc:  p.ImporterSvc,
		reasons:      p.Reasons,
	}

	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	// Home / Dashboard
	admin.GET("/home", s.GetHome)
	admin.GET("/due", s.GetDue)

	// -------- Fields --------
	admin.GET("/fields", s.ListFields)
	admin.POST("/fields", s.CreateField)
	admin.GET("/fields/:id", s.GetFieldByID)
	admin.PATCH("/fields/:id", s.UpdateField)
	admin.DELETE("/fields/:id", s.DeleteField)

	// -------- Batteries --------
	admin.GET("/batteries", s.ListBatteries)
	admin.POST("/batteries", s.CreateBattery)
	admin.GET("/batteries/:id", s.GetBatteryByID)
	admin.PATCH("/batteries/:id", s.UpdateBattery)
	admin.DELETE("/batteries/:id", s.DeleteBattery)

	// -------- Meters --------
	admin.GET("/meters", s.ListMeters)
	admin.POST("/meters", s.CreateMeter)
	admin.GET("/meters/:id", s.GetMeterByID)
	admin.PATCH("/meters/:id", s.UpdateMeter)
	admin.DELETE("/meters/:id", s.DeleteMeter)
	admin.POST("/meters/:id/mark-tested", s.MarkMeterTested)

	// -------- History --------
	admin.GET("/meters/:id/history", s.ListMeterHistory)
	admin.POST("/meters/:id/history", s.AddMeterHistory)
	admin.DELETE("/history/:id", s.DeleteHistoryEntry)

	// -------- Stations (flat legacy inventory) --------
	admin.GET("/stations", s.ListStations)
	admin.GET("/stations/:station/meters", s.ListStationMeters)
	admin.POST("/station-meters", s.CreateStationMeter)
	admin.PATCH("/station-meters/:id", s.UpdateStationMeter)
	admin.DELETE("/station-meters/:id", s.DeleteStationMeter)

	// -------- Import / Export --------
	admin.POST("/import", s.ImportExcel)
	admin.GET("/export/:station", s.ExportCSV)

	// -------- Reference --------
	admin.GET("/reference/frequencies", s.ListFrequencies)
	admin.GET("/reference/mark-tested-reasons", s.ListMarkTestedReasons)
}
