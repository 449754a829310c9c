package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faqdesk/internal/domain/faq"
)

// ListFAQ returns the whole FAQ document.
func (h *Handler) ListFAQ(c *gin.Context) {
	data, err := h.faqSvc.All(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) FAQCategories(c *gin.Context) {
	categories, err := h.faqSvc.Categories(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) FAQByCategory(c *gin.Context) {
	entries, err := h.faqSvc.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) FAQByID(c *gin.Context) {
	id, httpErr := pathID(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	entry, err := h.faqSvc.ByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// SearchFAQ runs the exact scorer.
func (h *Handler) SearchFAQ(c *gin.Context) {
	result, err := h.faqSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// AISearchFAQ runs the fuzzy scorer. An unsuccessful result is still sent as
// the body so clients always receive the same shape.
func (h *Handler) AISearchFAQ(c *gin.Context) {
	query := c.Query("q")
	result, err := h.faqSvc.FuzzySearch(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	switch {
	case result.Success:
		c.JSON(http.StatusOK, result)
	case strings.TrimSpace(query) == "":
		c.JSON(http.StatusBadRequest, result)
	default:
		c.JSON(http.StatusInternalServerError, result)
	}
}

func (h *Handler) PopularFAQ(c *gin.Context) {
	limit, httpErr := queryLimit(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	entries, err := h.faqSvc.Popular(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) RecentFAQ(c *gin.Context) {
	limit, httpErr := queryLimit(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	entries, err := h.faqSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) FAQByKeyword(c *gin.Context) {
	entries, err := h.faqSvc.ByKeyword(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) FAQStats(c *gin.Context) {
	stats, err := h.faqSvc.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TrendingFAQ returns the most frequent search queries.
func (h *Handler) TrendingFAQ(c *gin.Context) {
	limit, httpErr := queryLimit(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	items, err := h.faqSvc.Trending(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": items})
}

func (h *Handler) CreateFAQ(c *gin.Context) {
	var req faq.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	entry, err := h.faqSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	h.logger.Info("faq entry created", "id", entry.ID, "operator", operator(c))
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) UpdateFAQ(c *gin.Context) {
	id, httpErr := pathID(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	var req faq.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	entry, err := h.faqSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	h.logger.Info("faq entry updated", "id", id, "operator", operator(c))
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) DeleteFAQ(c *gin.Context) {
	id, httpErr := pathID(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	if err := h.faqSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, fromDomainError(err, "faq_failed"))
		return
	}
	h.logger.Info("faq entry deleted", "id", id, "operator", operator(c))
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("FAQ item %d deleted successfully", id)})
}
