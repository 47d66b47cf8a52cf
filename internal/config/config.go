package config

import "os"

// Config carries the environment wiring for a service. All fields default
// to the docker-compose topology.
type Config struct {
	ServiceName     string
	HTTPAddr        string
	RedisAddr       string
	InventoryURL    string
	PaymentURL      string
	OrderURL        string
	NotificationURL string
}

// Load reads configuration from the environment with fallbacks.
func Load(serviceName, defaultAddr string) Config {
	return Config{
		ServiceName:     getenv("SERVICE_NAME", serviceName),
		HTTPAddr:        getenv("HTTP_ADDR", defaultAddr),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		InventoryURL:    getenv("INVENTORY_SERVICE_URL", "http://localhost:8081"),
		PaymentURL:      getenv("PAYMENT_SERVICE_URL", "http://localhost:8082"),
		OrderURL:        getenv("ORDER_SERVICE_URL", "http://localhost:8083"),
		NotificationURL: getenv("NOTIFICATION_SERVICE_URL", "http://localhost:8084"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
