package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

// sessionFilter reads the list query: page, limit, language, activity,
// search and archived.
func sessionFilter(c *gin.Context) (service.SessionFilter, string) {
	f := service.SessionFilter{
		LanguageID: c.Query("language"),
		Search:     c.Query("search"),
	}

	var err error
	if v := c.Query("page"); v != "" {
		if f.Page, err = strconv.Atoi(v); err != nil {
			return f, "page must be a number"
		}
	}
	if v := c.Query("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil {
			return f, "limit must be a number"
		}
	}
	if v := c.Query("activity"); v != "" {
		typ, ok := entities.ParseActivityType(v)
		if !ok {
			return f, "unknown activity type " + strconv.Quote(v)
		}
		f.Type = typ
	}
	if v := c.Query("archived"); v != "" {
		if f.Archived, err = strconv.ParseBool(v); err != nil {
			return f, "archived must be true or false"
		}
	}

	return f, ""
}

func (h *Handler) listSessions(c *gin.Context) {
	f, problem := sessionFilter(c)
	if problem != "" {
		h.badRequest(c, problem)
		return
	}

	page, err := h.sessions.List(c.Request.Context(), currentUser(c), f)
	if err != nil {
		h.fail(c, err, "failed to load sessions")
		return
	}
	h.respond(c, http.StatusOK, page.Sessions, map[string]any{"pagination": page.Pagination})
}

func (h *Handler) createSession(c *gin.Context) {
	var in service.SessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err, "failed to log session")
		return
	}
	h.respond(c, http.StatusCreated, sess, nil)
}

func (h *Handler) updateSession(c *gin.Context) {
	var in service.SessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	sess, err := h.sessions.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		h.fail(c, err, "failed to update session")
		return
	}
	h.respond(c, http.StatusOK, sess, nil)
}

func (h *Handler) toggleSessionArchive(c *gin.Context) {
	archived, err := h.sessions.ToggleArchive(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to archive session")
		return
	}
	h.respond(c, http.StatusOK, gin.H{"archived": archived}, nil)
}
