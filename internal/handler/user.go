package handler

import (
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// Me returns the caller's profile, creating it on first sight.
func (h *Handler) Me(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	profile, err := h.Profiles.GetOrCreate(c.Request.Context(), id.UserID, id.Email)
	if err != nil {
		h.fail(c, "load profile", err)
		return
	}
	response.OK(c, profile)
}
