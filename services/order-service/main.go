package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harshadelights/commerce-core/internal/config"
	"github.com/harshadelights/commerce-core/internal/metrics"
	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// OrderService persists confirmed orders
type OrderService struct {
	orders map[string]*models.Order
	mutex  sync.RWMutex
}

var orderService *OrderService

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	orderService = &OrderService{
		orders: make(map[string]*models.Order),
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load("order-service", ":8083")

	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware(cfg.ServiceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/orders", createOrder)
	router.GET("/orders/:orderId", getOrder)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info("Order Service starting on ", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		SessionID:       req.SessionID,
		CustomerID:      req.CustomerID,
		Items:           req.Items,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		Shipping:        req.Shipping,
		Total:           req.Total,
		PaymentID:       req.PaymentID,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusConfirmed,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now(),
	}

	orderService.mutex.Lock()
	orderService.orders[order.ID] = order
	orderService.mutex.Unlock()

	log.WithFields(log.Fields{
		"order_id":   order.ID,
		"session_id": order.SessionID,
		"total":      order.Total,
	}).Info("Order created")

	c.JSON(http.StatusCreated, models.CreateOrderResponse{OrderID: order.ID})
}

func getOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	orderService.mutex.RLock()
	order, exists := orderService.orders[orderID]
	orderService.mutex.RUnlock()

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "Order not found",
			"order_id": orderID,
		})
		return
	}

	c.JSON(http.StatusOK, order)
}
