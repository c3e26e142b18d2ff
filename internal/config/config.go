package config

import (
	"os"
	"strconv"
)

// Config carries the addresses and credentials of every backing
// service. Defaults match the local docker-compose setup.
type Config struct {
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisHost string
	RedisPort int

	RabbitHost     string
	RabbitPort     int
	RabbitUser     string
	RabbitPassword string

	ConsulHost string
	ConsulPort int

	CatalogServiceURL string

	// ShipmentSink selects where shipments go: "queue" publishes to
	// RabbitMQ, "log" prints them to the console.
	ShipmentSink string
}

func Load() Config {
	return Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:     getEnv("POSTGRES_USER", "nestops"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "nestops123"),
		PostgresDB:       getEnv("POSTGRES_DB", "nestops"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnvInt("REDIS_PORT", 6379),

		RabbitHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort:     getEnvInt("RABBITMQ_PORT", 5672),
		RabbitUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		ConsulHost: getEnv("CONSUL_HOST", "localhost"),
		ConsulPort: getEnvInt("CONSUL_PORT", 8500),

		CatalogServiceURL: getEnv("CATALOG_SERVICE_URL", "http://localhost:8081"),

		ShipmentSink: getEnv("SHIPMENT_SINK", "queue"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
