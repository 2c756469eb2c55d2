package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/directory"
	"skillbridge-backend/internal/matching"
	"skillbridge-backend/internal/reports"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/shared/metrics"
	"skillbridge-backend/internal/shared/server/middleware"
	"skillbridge-backend/internal/shared/server/respond"
	"skillbridge-backend/internal/students"
)

// RouterDeps carries the handlers wired into the engine.
type RouterDeps struct {
	Config           config.Config
	StudentsHandler  *students.Handler
	DirectoryHandler *directory.Handler
	MatchingHandler  *matching.Handler
	ReportsHandler   *reports.Handler
}

const matchRateGroup = "MATCH"

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

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	authed := api.Group("", middleware.Auth())
	// Ranking recomputes scores on every call, so mentor-match routes get
	// their own bucket while plain reads stay unmetered.
	authed.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			matchRateGroup: {Rate: 2, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/mentor-matches") {
				return matchRateGroup
			}
			return ""
		},
	}))

	if deps.StudentsHandler != nil {
		deps.StudentsHandler.RegisterRoutes(authed)
	}
	if deps.DirectoryHandler != nil {
		deps.DirectoryHandler.RegisterRoutes(authed)
	}
	if deps.MatchingHandler != nil {
		deps.MatchingHandler.RegisterRoutes(authed)
	}
	if deps.ReportsHandler != nil {
		deps.ReportsHandler.RegisterRoutes(authed)
	}

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
