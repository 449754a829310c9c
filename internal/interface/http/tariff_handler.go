package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTariffs(c *gin.Context) {
	data, err := h.tariffSvc.All(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *Handler) TariffByID(c *gin.Context) {
	t, err := h.tariffSvc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) PopularTariffs(c *gin.Context) {
	tariffs, err := h.tariffSvc.Popular(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, tariffs)
}

func (h *Handler) RecommendedTariffs(c *gin.Context) {
	tariffs, err := h.tariffSvc.Recommended(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, tariffs)
}

func (h *Handler) TariffDiscounts(c *gin.Context) {
	discounts, err := h.tariffSvc.Discounts(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, discounts)
}

func (h *Handler) TrialPeriod(c *gin.Context) {
	days, err := h.tariffSvc.TrialPeriod(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"trial_period_days": days})
}

// CalculatePrice applies the period discount to a tariff's monthly price.
func (h *Handler) CalculatePrice(c *gin.Context) {
	calc, err := h.tariffSvc.CalculatePrice(c.Request.Context(), c.Param("id"), c.Query("period"))
	if err != nil {
		abortWithError(c, fromDomainError(err, "tariff_failed"))
		return
	}
	c.JSON(http.StatusOK, calc)
}
