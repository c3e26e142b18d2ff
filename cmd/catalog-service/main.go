package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nestops/fulfillment-go/internal/cache"
	"github.com/nestops/fulfillment-go/internal/config"
	"github.com/nestops/fulfillment-go/internal/db"
	"github.com/nestops/fulfillment-go/internal/discovery"
	"github.com/nestops/fulfillment-go/internal/handlers"
)

const (
	serviceName = "catalog-service"
	serviceID   = "catalog-service-1"
	servicePort = 8081
)

func main() {
	cfg := config.Load()

	// Connect to PostgreSQL
	database, err := db.NewPostgresDB(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Connect to Redis
	redisCache, err := cache.NewRedisCache(cfg.RedisHost, cfg.RedisPort, 5*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Register with Consul
	consul, err := discovery.NewConsulClient(cfg.ConsulHost, cfg.ConsulPort)
	if err != nil {
		log.Fatalf("Failed to connect to Consul: %v", err)
	}

	err = consul.Register(discovery.ServiceConfig{
		Name: serviceName,
		ID:   serviceID,
		Port: servicePort,
		Tags: []string{"api", "catalog"},
	})
	if err != nil {
		log.Fatalf("Failed to register service: %v", err)
	}

	// Deregister on shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		consul.Deregister(serviceID)
		os.Exit(0)
	}()

	// Create repositories and handler
	store := db.NewStore(database)
	catalogRepo := db.NewCatalogRepository(database)
	cachedRepo := db.NewCachedCatalogRepository(catalogRepo, redisCache)
	catalogHandler := handlers.NewCatalogHandler(cachedRepo, store)

	// Setup router
	router := gin.Default()

	router.GET("/health", catalogHandler.HealthCheck)
	router.POST("/catalog/init", catalogHandler.InitCatalog)
	router.GET("/catalog/products", catalogHandler.ListProducts)
	router.GET("/catalog/products/:id", catalogHandler.GetProduct)

	// Start server
	log.Printf("🚀 %s starting on http://localhost:%d", serviceName, servicePort)
	router.Run(":8081")
}
