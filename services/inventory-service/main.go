package main

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/harshadelights/commerce-core/internal/config"
	"github.com/harshadelights/commerce-core/internal/metrics"
	"github.com/harshadelights/commerce-core/internal/models"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// InventoryService manages confectionery stock levels
type InventoryService struct {
	items map[string]*models.StockItem
	mutex sync.RWMutex
}

var inventoryService *InventoryService

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	inventoryService = &InventoryService{
		items: make(map[string]*models.StockItem),
	}

	sampleItems := []*models.StockItem{
		{SKU: "HD-LADOO-250", Name: "Besan Ladoo 250g", Quantity: 500, Price: 220},
		{SKU: "HD-KAJU-500", Name: "Kaju Katli 500g", Quantity: 300, Price: 650},
		{SKU: "HD-SOAN-400", Name: "Soan Papdi 400g", Quantity: 800, Price: 180},
		{SKU: "HD-RASGULLA-1K", Name: "Rasgulla Tin 1kg", Quantity: 250, Price: 300},
		{SKU: "HD-MIXMITHAI-750", Name: "Assorted Mithai Box 750g", Quantity: 150, Price: 540},
	}

	for _, item := range sampleItems {
		inventoryService.items[item.SKU] = item
		metrics.InventoryLevel.WithLabelValues(item.SKU).Set(float64(item.Quantity))
	}
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load("inventory-service", ":8081")

	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware(cfg.ServiceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.POST("/inventory/validate", validateItems)
	router.POST("/inventory/reserve", reserveItems)
	router.POST("/inventory/release", releaseItems)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info("Inventory Service starting on ", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// validateItems reports whether every requested line can be fulfilled.
// Unknown SKUs count as unavailable.
func validateItems(c *gin.Context) {
	var req models.ValidateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"available": false,
			"message":   "Invalid request: " + err.Error(),
		})
		return
	}

	inventoryService.mutex.RLock()
	defer inventoryService.mutex.RUnlock()

	var unavailable []string
	for _, line := range req.Items {
		item, exists := inventoryService.items[line.ProductID]
		if !exists || item.Quantity < line.Quantity {
			unavailable = append(unavailable, line.ProductID)
		}
	}

	if len(unavailable) > 0 {
		c.JSON(http.StatusOK, models.ValidateItemsResponse{
			Available:        false,
			UnavailableItems: unavailable,
			Message:          "Some items are out of stock",
		})
		return
	}

	c.JSON(http.StatusOK, models.ValidateItemsResponse{Available: true})
}

func reserveItems(c *gin.Context) {
	var req models.ReserveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	inventoryService.mutex.Lock()
	defer inventoryService.mutex.Unlock()

	// Re-check everything before deducting anything
	for _, line := range req.Items {
		item, exists := inventoryService.items[line.ProductID]
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Item not found: " + line.ProductID,
			})
			return
		}
		if item.Quantity < line.Quantity {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Insufficient inventory for item: " + line.ProductID,
			})
			return
		}
	}

	for _, line := range req.Items {
		item := inventoryService.items[line.ProductID]
		item.Quantity -= line.Quantity
		metrics.InventoryLevel.WithLabelValues(item.SKU).Set(float64(item.Quantity))
	}

	log.WithFields(log.Fields{
		"order_id": req.OrderID,
		"items":    len(req.Items),
	}).Info("Items reserved successfully")

	c.JSON(http.StatusOK, models.ReserveItemsResponse{
		Success: true,
		Message: "Items reserved successfully",
	})
}

func releaseItems(c *gin.Context) {
	var req models.ReleaseItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	inventoryService.mutex.Lock()
	defer inventoryService.mutex.Unlock()

	for _, line := range req.Items {
		item, exists := inventoryService.items[line.ProductID]
		if exists {
			item.Quantity += line.Quantity
			metrics.InventoryLevel.WithLabelValues(item.SKU).Set(float64(item.Quantity))
		}
	}

	log.WithFields(log.Fields{
		"order_id": req.OrderID,
		"items":    len(req.Items),
	}).Info("Items released successfully")

	c.JSON(http.StatusOK, models.ReleaseItemsResponse{
		Success: true,
		Message: "Items released successfully",
	})
}
