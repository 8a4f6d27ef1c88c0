package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	users      UserService
	languages  LanguageService
	goals      GoalService
	sessions   SessionService
	statistics StatisticsService
	streaks    StreakService
	dashboard  DashboardService
	logger     *zap.Logger
}

func NewHandler(s Services, logger *zap.Logger) *Handler {
	return &Handler{
		users:      s.Users,
		languages:  s.Languages,
		goals:      s.Goals,
		sessions:   s.Sessions,
		statistics: s.Statistics,
		streaks:    s.Streaks,
		dashboard:  s.Dashboard,
		logger:     logger,
	}
}

// RouterConfig holds the settings of the HTTP surface that are not handlers.
type RouterConfig struct {
	JWTSecret   string
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and every route under
// /api/v1.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(h.logger), cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, success(gin.H{"status": "ok"}, nil))
	})

	v1 := r.Group("/api/v1", Auth(cfg.JWTSecret, h.users, h.logger))

	v1.GET("/dashboard", h.getDashboard)
	v1.GET("/statistics", h.getStatistics)
	v1.GET("/streak", h.getStreak)

	goals := v1.Group("/goals")
	goals.GET("", h.listGoals)
	goals.POST("", h.createGoal)
	goals.POST("/:id/sync", h.syncGoal)
	goals.DELETE("/:id", h.deleteGoal)

	languages := v1.Group("/languages")
	languages.GET("", h.listLanguages)
	languages.POST("", h.addLanguage)
	languages.DELETE("/:id", h.removeLanguage)

	sessions := v1.Group("/sessions")
	sessions.GET("", h.listSessions)
	sessions.POST("", h.createSession)
	sessions.PUT("/:id", h.updateSession)
	sessions.POST("/:id/archive", h.toggleSessionArchive)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
