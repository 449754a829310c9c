package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faqdesk/internal/domain/auth"
	"github.com/yanqian/faqdesk/internal/domain/faq"
	"github.com/yanqian/faqdesk/internal/domain/lead"
	"github.com/yanqian/faqdesk/internal/domain/tariff"
)

const (
	serviceName    = "faqdesk"
	serviceVersion = "1.0.0"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	faqSvc    faq.Service
	tariffSvc tariff.Service
	leadSvc   lead.Service
	authSvc   auth.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, tariffSvc tariff.Service, leadSvc lead.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc:    faqSvc,
		tariffSvc: tariffSvc,
		leadSvc:   leadSvc,
		authSvc:   authSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

// Root describes the running service.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": serviceName + " is running",
		"version": serviceVersion,
	})
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

// queryLimit reads ?limit=, returning 0 when absent so services apply their defaults.
func queryLimit(c *gin.Context) (int, *HTTPError) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err)
	}
	return limit, nil
}

func pathID(c *gin.Context) (int64, *HTTPError) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid_request", "id must be a positive integer", err)
	}
	return id, nil
}
