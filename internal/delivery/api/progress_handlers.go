package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

// The read views below never fail the request: a broken part is replaced by
// its default and the reason goes into the error field.

func (h *Handler) getDashboard(c *gin.Context) {
	d := h.dashboard.Get(c.Request.Context(), currentUser(c))
	if len(d.Errors) > 0 {
		c.JSON(http.StatusOK, degraded(d, strings.Join(d.Errors, ", ")))
		return
	}
	h.respond(c, http.StatusOK, d, nil)
}

func (h *Handler) getStatistics(c *gin.Context) {
	tf := entities.Timeframe(c.DefaultQuery("timeframe", string(entities.TimeframeWeek)))

	stats, err := h.statistics.Get(c.Request.Context(), currentUser(c), tf)
	if err != nil {
		h.logger.Error("statistics unavailable",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("user_id", currentUser(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, degraded(service.EmptyStatistics(tf), "statistics unavailable"))
		return
	}
	h.respond(c, http.StatusOK, stats, nil)
}

type streakResponse struct {
	CurrentStreak int `json:"currentStreak"`
}

func (h *Handler) getStreak(c *gin.Context) {
	streak, err := h.streaks.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		h.logger.Error("streak unavailable",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("user_id", currentUser(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, degraded(streakResponse{}, "streak unavailable"))
		return
	}
	h.respond(c, http.StatusOK, streakResponse{CurrentStreak: streak}, nil)
}
