package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faqdesk/internal/domain/lead"
)

// SubmitApplication stores a lead and queues its notifications.
func (h *Handler) SubmitApplication(c *gin.Context) {
	var req lead.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.leadSvc.Submit(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "lead_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListApplications returns stored leads, newest first.
func (h *Handler) ListApplications(c *gin.Context) {
	limit, httpErr := queryLimit(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	apps, err := h.leadSvc.List(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err, "lead_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}
