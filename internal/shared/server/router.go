package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propdocs-backend/internal/documents"
	"propdocs-backend/internal/maintchat"
	"propdocs-backend/internal/properties"
	"propdocs-backend/internal/shared/config"
	"propdocs-backend/internal/shared/metrics"
	"propdocs-backend/internal/shared/server/middleware"
	"propdocs-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	PropertyHandler *properties.Handler
	ChatHandler     *maintchat.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("", middleware.Auth())
	deps.DocumentHandler.RegisterRoutes(authed)
	deps.PropertyHandler.RegisterRoutes(authed)
	deps.ChatHandler.RegisterRoutes(authed)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
