package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/lingua-tracker/internal/service"
)

// allLanguages is the language filter value meaning "no filter".
const allLanguages = "all"

func (h *Handler) listGoals(c *gin.Context) {
	language := c.Query("language")
	if language == allLanguages {
		language = ""
	}

	list, err := h.goals.List(c.Request.Context(), currentUser(c), language)
	if err != nil {
		h.fail(c, err, "failed to load goals")
		return
	}
	h.respond(c, http.StatusOK, list.Goals, map[string]any{"summary": list.Summary})
}

func (h *Handler) createGoal(c *gin.Context) {
	var in service.CreateGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	goal, err := h.goals.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err, "failed to create goal")
		return
	}
	h.respond(c, http.StatusCreated, goal, nil)
}

func (h *Handler) syncGoal(c *gin.Context) {
	goal, err := h.goals.SyncOwned(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to sync goal")
		return
	}
	h.respond(c, http.StatusOK, goal, nil)
}

func (h *Handler) deleteGoal(c *gin.Context) {
	if err := h.goals.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}
