package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harshadelights/commerce-core/internal/cart"
	"github.com/harshadelights/commerce-core/internal/checkout"
	"github.com/harshadelights/commerce-core/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes the cart store and checkout orchestrator over HTTP.
type Handler struct {
	store        *cart.Store
	orchestrator *checkout.Orchestrator
}

func NewHandler(store *cart.Store, orchestrator *checkout.Orchestrator) *Handler {
	return &Handler{
		store:        store,
		orchestrator: orchestrator,
	}
}

// NewRouter builds the cart-service gin engine.
func NewRouter(serviceName string, h *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(metrics.PrometheusMiddleware(serviceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/cart/:sessionId", h.createCart)
	router.GET("/cart/:sessionId", h.getCart)
	router.DELETE("/cart/:sessionId", h.clearCart)
	router.POST("/cart/:sessionId/items", h.addItem)
	router.PUT("/cart/:sessionId/items/:productId", h.updateItem)
	router.DELETE("/cart/:sessionId/items/:productId", h.removeItem)

	router.POST("/checkout", h.checkoutCart)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
