package main

import (
	"net/http"
	"strings"
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

// Charges against credentials ending in this suffix are declined. Gives
// integration environments a deterministic failure path.
const declineSuffix = "0000"

// PaymentService manages UPI and card transactions
type PaymentService struct {
	transactions map[string]*models.Transaction
	mutex        sync.RWMutex
}

var paymentService *PaymentService

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	paymentService = &PaymentService{
		transactions: make(map[string]*models.Transaction),
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load("payment-service", ":8082")

	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware(cfg.ServiceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/payment/upi", chargeUPI)
	router.POST("/payment/card", chargeCard)
	router.POST("/payment/refund", refundPayment)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info("Payment Service starting on ", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func chargeUPI(c *gin.Context) {
	var req models.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ChargeResponse{
			Success: false,
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	if req.VPA == "" {
		c.JSON(http.StatusOK, models.ChargeResponse{
			Success: false,
			Message: "UPI VPA is required",
		})
		return
	}

	charge(c, req, models.PaymentMethodUPI, req.VPA)
}

func chargeCard(c *gin.Context) {
	var req models.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ChargeResponse{
			Success: false,
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	if req.CardNumber == "" {
		c.JSON(http.StatusOK, models.ChargeResponse{
			Success: false,
			Message: "Card number is required",
		})
		return
	}

	charge(c, req, models.PaymentMethodCard, req.CardNumber)
}

func charge(c *gin.Context, req models.ChargeRequest, method, credential string) {
	if strings.HasSuffix(credential, declineSuffix) {
		log.WithFields(log.Fields{
			"session_id": req.SessionID,
			"method":     method,
			"amount":     req.Amount,
		}).Warn("Charge declined by provider")

		c.JSON(http.StatusOK, models.ChargeResponse{
			Success: false,
			Message: "Payment declined by provider",
		})
		return
	}

	txn := &models.Transaction{
		ID:        method + "-" + uuid.New().String(),
		SessionID: req.SessionID,
		Method:    method,
		Amount:    req.Amount,
		Status:    models.PaymentStatusCompleted,
		Timestamp: time.Now(),
	}

	paymentService.mutex.Lock()
	paymentService.transactions[txn.ID] = txn
	paymentService.mutex.Unlock()

	metrics.PaymentAmount.Observe(req.Amount)

	log.WithFields(log.Fields{
		"payment_id": txn.ID,
		"session_id": req.SessionID,
		"method":     method,
		"amount":     req.Amount,
	}).Info("Charge completed")

	c.JSON(http.StatusOK, models.ChargeResponse{
		Success:   true,
		PaymentID: txn.ID,
		Message:   "Charge completed",
	})
}

func refundPayment(c *gin.Context) {
	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.RefundResponse{
			Success: false,
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	paymentService.mutex.Lock()
	defer paymentService.mutex.Unlock()

	txn, exists := paymentService.transactions[req.PaymentID]
	if !exists {
		c.JSON(http.StatusNotFound, models.RefundResponse{
			Success: false,
			Message: "Transaction not found: " + req.PaymentID,
		})
		return
	}

	txn.Status = "refunded"

	log.WithFields(log.Fields{
		"payment_id": req.PaymentID,
		"amount":     req.Amount,
		"reason":     req.Reason,
	}).Info("Charge refunded")

	c.JSON(http.StatusOK, models.RefundResponse{
		Success: true,
		Message: "Refund completed",
	})
}
