package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/nestops/fulfillment-go/internal/client"
	"github.com/nestops/fulfillment-go/internal/config"
	"github.com/nestops/fulfillment-go/internal/consumer"
	"github.com/nestops/fulfillment-go/internal/db"
	"github.com/nestops/fulfillment-go/internal/discovery"
	"github.com/nestops/fulfillment-go/internal/fulfillment"
	"github.com/nestops/fulfillment-go/internal/handlers"
	"github.com/nestops/fulfillment-go/internal/messaging"
	"github.com/nestops/fulfillment-go/internal/publisher"
)

const (
	serviceName = "fulfillment-service"
	serviceID   = "fulfillment-service-1"
	servicePort = 8082
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

	// Connect to RabbitMQ
	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitHost, cfg.RabbitPort, cfg.RabbitUser, cfg.RabbitPassword)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	// Shipment sink: queue by default, console for local runs
	var sink fulfillment.ShipmentSink
	if cfg.ShipmentSink == "log" {
		sink = publisher.LogSink{}
	} else {
		sink, err = publisher.NewShipmentPublisher(rabbitMQ)
		if err != nil {
			log.Fatalf("Failed to create shipment publisher: %v", err)
		}
	}

	// Register with Consul
	consul, err := discovery.NewConsulClient(cfg.ConsulHost, cfg.ConsulPort)
	if err != nil {
		log.Fatalf("Failed to connect to Consul: %v", err)
	}

	err = consul.Register(discovery.ServiceConfig{
		Name: serviceName,
		ID:   serviceID,
		Port: servicePort,
		Tags: []string{"api", "orders", "inventory"},
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

	// Wire the core: catalog lookup, dispatcher, allocator, reconciler
	catalogClient := client.NewCatalogClient(cfg.CatalogServiceURL)
	store := db.NewStore(database)
	dispatcher := fulfillment.NewDispatcher(catalogClient, sink)
	allocator := fulfillment.NewAllocator(store, dispatcher)
	reconciler := fulfillment.NewReconciler(store, dispatcher, fulfillment.ByOrderID)
	inventory := fulfillment.NewInventoryService(store, reconciler)

	orderHandler := handlers.NewOrderHandler(allocator)
	inventoryHandler := handlers.NewInventoryHandler(inventory)

	// Start restock event consumer
	go startRestockConsumer(rabbitMQ, inventory)

	// Setup router
	router := gin.Default()

	router.GET("/health", orderHandler.HealthCheck)
	router.POST("/orders", orderHandler.CreateOrder)
	router.POST("/inventory/restock", inventoryHandler.Restock)
	router.GET("/inventory/:productId", inventoryHandler.GetQuantity)

	// Start server
	log.Printf("🚀 %s starting on http://localhost:%d", serviceName, servicePort)
	log.Println("   Publishing shipments, consuming restocks")
	router.Run(":8082")
}

func startRestockConsumer(mq *messaging.RabbitMQ, inventory *fulfillment.InventoryService) {
	if err := mq.DeclareQueue(consumer.RestockRequestedQueue); err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	messages, err := mq.Consume(consumer.RestockRequestedQueue)
	if err != nil {
		log.Fatalf("Failed to consume messages: %v", err)
	}

	restockConsumer := consumer.NewRestockConsumer(inventory)
	restockConsumer.ProcessRestockRequests(context.Background(), messages)
}
