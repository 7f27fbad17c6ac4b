package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/telepatia/internal/api/handlers"
	"github.com/yoockh/telepatia/internal/api/middleware"
	"github.com/yoockh/telepatia/internal/metrics"
)

type Deps struct {
	Health     *handlers.HealthHandler
	Message    *handlers.MessageHandler
	Extraction *handlers.ExtractionHandler

	Log       *logrus.Logger
	Metrics   *metrics.Metrics
	JWTSecret string
}

// NewRouter builds the engine with the global middleware chain and all routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = metrics.DefaultMetrics
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}

	r := gin.New()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	corsCfg.ExposeHeaders = []string{middleware.HeaderRequestID}

	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
		middleware.Metrics(d.Metrics),
		cors.New(corsCfg),
	)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", d.Health.Root)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	health := r.Group("/health")
	health.GET("/ping", d.Health.Ping)
	health.GET("/db_connection", d.Health.DBConnection)

	// Protected routes (JWT, when configured)
	msg := r.Group("/message")
	msg.Use(middleware.JWTAuth(d.JWTSecret))
	msg.POST("/validate-process-text", d.Message.ProcessText)
	msg.POST("/validate-process-audio", d.Message.ProcessAudio)
	msg.POST("/generate-text", d.Extraction.GenerateText)

	r.NoRoute(handlers.NotFound)
}
