package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/lingua-tracker/internal/service"
)

func (h *Handler) listLanguages(c *gin.Context) {
	languages, err := h.languages.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err, "failed to load languages")
		return
	}
	h.respond(c, http.StatusOK, languages, nil)
}

func (h *Handler) addLanguage(c *gin.Context) {
	var in service.AddLanguageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	progress, err := h.languages.Add(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err, "failed to add language")
		return
	}
	h.respond(c, http.StatusCreated, progress, nil)
}

// removeLanguage drops the language from the user's list. With
// ?archive=true its goals and sessions are archived in the same transaction.
func (h *Handler) removeLanguage(c *gin.Context) {
	archive, err := strconv.ParseBool(c.DefaultQuery("archive", "false"))
	if err != nil {
		h.badRequest(c, "archive must be true or false")
		return
	}

	if err := h.languages.Remove(c.Request.Context(), currentUser(c), c.Param("id"), archive); err != nil {
		h.fail(c, err, "failed to remove language")
		return
	}
	c.Status(http.StatusNoContent)
}
