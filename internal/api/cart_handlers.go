package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harshadelights/commerce-core/internal/cart"
	"github.com/harshadelights/commerce-core/internal/metrics"
	"github.com/harshadelights/commerce-core/internal/models"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) createCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	// Body is optional; an anonymous session has no customer id.
	var req models.CreateCartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.CartOperationsTotal.WithLabelValues("create", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	result, err := h.store.Create(c.Request.Context(), sessionID, req.CustomerID)
	if err != nil {
		respondCartError(c, "create", err)
		return
	}

	metrics.CartOperationsTotal.WithLabelValues("create", "ok").Inc()
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) getCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	result, err := h.store.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondCartError(c, "get", err)
		return
	}

	metrics.CartOperationsTotal.WithLabelValues("get", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) addItem(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add_item", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.store.AddItem(c.Request.Context(), sessionID, req.ProductID, req.Quantity, req.UnitPrice)
	if err != nil {
		respondCartError(c, "add_item", err)
		return
	}

	metrics.CartOperationsTotal.WithLabelValues("add_item", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) updateItem(c *gin.Context) {
	sessionID := c.Param("sessionId")
	productID := c.Param("productId")

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("update_item", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.store.UpdateItem(c.Request.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		respondCartError(c, "update_item", err)
		return
	}

	metrics.CartOperationsTotal.WithLabelValues("update_item", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) removeItem(c *gin.Context) {
	sessionID := c.Param("sessionId")
	productID := c.Param("productId")

	result, err := h.store.RemoveItem(c.Request.Context(), sessionID, productID)
	if err != nil {
		respondCartError(c, "remove_item", err)
		return
	}

	metrics.CartOperationsTotal.WithLabelValues("remove_item", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) clearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	result, err := h.store.Clear(c.Request.Context(), sessionID)
	if err != nil {
		respondCartError(c, "clear", err)
		return
	}

	metrics.CartOperationsTotal.WithLabelValues("clear", "ok").Inc()
	c.JSON(http.StatusOK, result)
}

// checkoutCart submits the orchestration. The response is always 200 with
// a CheckoutResult body; callers branch on result.status, not HTTP codes.
func (h *Handler) checkoutCart(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.orchestrator.Checkout(c.Request.Context(), &req)

	if result.Status == models.OrderStatusConfirmed {
		if _, err := h.store.Clear(c.Request.Context(), req.SessionID); err != nil && !errors.Is(err, cart.ErrCartNotFound) {
			log.WithField("session_id", req.SessionID).Warn("post-checkout cart clear failed: ", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

func respondCartError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		metrics.CartOperationsTotal.WithLabelValues(operation, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
	case errors.Is(err, cart.ErrItemNotFound):
		metrics.CartOperationsTotal.WithLabelValues(operation, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
	default:
		metrics.CartOperationsTotal.WithLabelValues(operation, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
