package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faqdesk/internal/domain/auth"
)

// Login exchanges the operator credential for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "auth_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
