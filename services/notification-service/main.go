package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harshadelights/commerce-core/internal/config"
	"github.com/harshadelights/commerce-core/internal/metrics"
	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load("notification-service", ":8084")

	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware(cfg.ServiceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/notifications/order-confirmation", sendOrderConfirmation)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info("Notification Service starting on ", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// sendOrderConfirmation stands in for the email/SMS provider call: logs the
// confirmation and acknowledges.
func sendOrderConfirmation(c *gin.Context) {
	var req models.OrderConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	log.WithFields(log.Fields{
		"order_id":    req.OrderID,
		"customer_id": req.CustomerID,
	}).Info("Order confirmation sent")

	c.JSON(http.StatusOK, gin.H{"sent": true})
}
