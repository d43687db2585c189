package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"photowalk/internal/config"
	"photowalk/pkg/metrics"
)

type HealthController struct {
	db      *gorm.DB
	cfg     config.Config
	metrics *metrics.WalkMetrics
}

func NewHealthController(db *gorm.DB, cfg config.Config, m *metrics.WalkMetrics) *HealthController {
	return &HealthController{db: db, cfg: cfg, metrics: m}
}

// Health godoc
// @Summary Liveness and gateway configuration
// @Description Always 200. Reports which optional backends are available.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	database := "unavailable"
	if h.db != nil {
		if sqlDB, err := h.db.DB(); err == nil && sqlDB.PingContext(c.Request.Context()) == nil {
			database = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database,
		"missions": h.cfg.HasMissionCredentials(),
		"routing":  h.cfg.MapboxAccessToken != "",
		"images":   h.cfg.ImageStore,
	})
}

func (h *HealthController) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	gin.WrapH(h.metrics.Handler())(c)
}
