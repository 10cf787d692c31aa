package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
)

type HealthHandler struct {
	db      *database.DB
	cache   *services.CacheService
	breaker *services.CircuitBreakerService
}

func NewHealthHandler(db *database.DB, cache *services.CacheService, breaker *services.CircuitBreakerService) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		breaker: breaker,
	}
}

// GetHealth returns 200 whenever the server is up. Dependency state is
// reported but does not change the status code.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB.DB(); err != nil {
		dbStatus = "unavailable"
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "unavailable"
	}

	cache := "disabled"
	if h.cache.Enabled() {
		cache = "enabled"
	}

	body := gin.H{
		"status":   "ok",
		"time":     time.Now().UTC(),
		"service":  "draft-diagnostics",
		"database": dbStatus,
		"cache":    cache,
	}
	if h.breaker != nil {
		body["circuit_breakers"] = h.breaker.States()
	}

	c.JSON(http.StatusOK, body)
}
