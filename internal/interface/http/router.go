package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/faqdesk/internal/infra/config"
	"github.com/yanqian/faqdesk/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	metrics.Register()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		metricsMiddleware(),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var admin gin.HandlerFunc
	if cfg.Admin.Enabled && handler.authSvc != nil {
		admin = authMiddleware(handler.authSvc)
		router.POST("/api/auth/login", handler.Login)
	}

	faqGroup := router.Group("/api/faq")
	{
		faqGroup.GET("", handler.ListFAQ)
		faqGroup.GET("/categories", handler.FAQCategories)
		faqGroup.GET("/category/:category", handler.FAQByCategory)
		faqGroup.GET("/search", handler.SearchFAQ)
		faqGroup.GET("/ai-search", handler.AISearchFAQ)
		faqGroup.GET("/popular", handler.PopularFAQ)
		faqGroup.GET("/recent", handler.RecentFAQ)
		faqGroup.GET("/keyword/:keyword", handler.FAQByKeyword)
		faqGroup.GET("/stats", handler.FAQStats)
		faqGroup.GET("/trending", handler.TrendingFAQ)
		faqGroup.GET("/:id", handler.FAQByID)
		if admin != nil {
			faqGroup.POST("/admin/add", admin, handler.CreateFAQ)
			faqGroup.PUT("/admin/:id", admin, handler.UpdateFAQ)
			faqGroup.DELETE("/admin/:id", admin, handler.DeleteFAQ)
		}
	}

	tariffGroup := router.Group("/api/tariffs")
	{
		tariffGroup.GET("", handler.ListTariffs)
		tariffGroup.GET("/tariff/:id", handler.TariffByID)
		tariffGroup.GET("/popular", handler.PopularTariffs)
		tariffGroup.GET("/recommended", handler.RecommendedTariffs)
		tariffGroup.GET("/discounts", handler.TariffDiscounts)
		tariffGroup.GET("/trial-period", handler.TrialPeriod)
		tariffGroup.GET("/calculate-price/:id", handler.CalculatePrice)
	}

	applications := router.Group("/api/applications")
	{
		applications.POST("/submit", handler.SubmitApplication)
		if admin != nil {
			applications.GET("", admin, handler.ListApplications)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
