package main

import (
	"github.com/harshadelights/commerce-core/internal/api"
	"github.com/harshadelights/commerce-core/internal/cache"
	"github.com/harshadelights/commerce-core/internal/cart"
	"github.com/harshadelights/commerce-core/internal/checkout"
	"github.com/harshadelights/commerce-core/internal/clients"
	"github.com/harshadelights/commerce-core/internal/config"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load("cart-service", ":8080")

	// Redis is optional: without it carts live in memory only and
	// duplicate checkout submissions are not deduplicated across restarts.
	var cartCache cache.CartCache
	var resultStore checkout.ResultStore = checkout.NewMemoryResultStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		cartCache = cache.NewRedisCache(rdb)
		resultStore = checkout.NewRedisResultStore(rdb)
		log.WithField("redis_addr", cfg.RedisAddr).Info("Cart persistence enabled")
	}

	store := cart.NewStore(cartCache)

	orchestrator := checkout.NewOrchestrator(
		clients.NewInventoryClient(cfg.InventoryURL, cfg.ServiceName),
		clients.NewPaymentClient(cfg.PaymentURL, cfg.ServiceName),
		clients.NewOrdersClient(cfg.OrderURL),
		clients.NewNotificationClient(cfg.NotificationURL),
		resultStore,
	)

	router := api.NewRouter(cfg.ServiceName, api.NewHandler(store, orchestrator))

	log.WithFields(log.Fields{
		"inventory_url":    cfg.InventoryURL,
		"payment_url":      cfg.PaymentURL,
		"order_url":        cfg.OrderURL,
		"notification_url": cfg.NotificationURL,
	}).Info("Cart Service starting on ", cfg.HTTPAddr)

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
