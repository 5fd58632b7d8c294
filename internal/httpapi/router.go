package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/materna-backend/internal/httpapi/handlers"
	"github.com/yungbote/materna-backend/internal/httpapi/middleware"
	"github.com/yungbote/materna-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler     *handlers.HealthHandler
	SimulationHandler *handlers.SimulationHandler
	CohortHandler     *handlers.CohortHandler
	PredictHandler    *handlers.PredictHandler
	AuditHandler      *handlers.AuditHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.SimulationHandler != nil {
			api.GET("/simulation", cfg.SimulationHandler.GetSimulation)
			api.POST("/simulation/run", cfg.SimulationHandler.RunSimulation)
		}
		if cfg.CohortHandler != nil {
			api.GET("/cohort", cfg.CohortHandler.ListCohort)
		}
		if cfg.PredictHandler != nil {
			api.POST("/predict", cfg.PredictHandler.Predict)
		}
		if cfg.AuditHandler != nil {
			api.GET("/audit", cfg.AuditHandler.GetAudit)
		}
	}

	return r
}
