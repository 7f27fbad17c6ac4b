package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/telepatia/internal/services"
)

type HealthHandler struct {
	svc     services.HealthService
	appName string
	version string
}

func NewHealthHandler(svc services.HealthService, appName, version string) *HealthHandler {
	return &HealthHandler{svc: svc, appName: appName, version: version}
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type DBConnectionResponse struct {
	Timestamp      string `json:"timestamp"`
	DatabaseStatus string `json:"database_status"`
	Version        string `json:"version"`
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: "Welcome to " + h.appName,
		Version: h.version,
		Health:  "/health",
	})
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message:   "pong",
		Timestamp: now(),
	})
}

// DBConnection always answers 200; the status field carries the outcome.
func (h *HealthHandler) DBConnection(c *gin.Context) {
	status := h.svc.DBStatus(c.Request.Context())
	c.JSON(http.StatusOK, DBConnectionResponse{
		Timestamp:      now(),
		DatabaseStatus: status,
		Version:        h.version,
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
