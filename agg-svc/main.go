package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"restaurant-hub/agg-svc/internal/service"
	"restaurant-hub/agg-svc/internal/storage"
	"restaurant-hub/config"
)

const consumerGroup = "agg-svc-consumer"

var topics = []string{"reviews", "orders"}

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(topics, consumerGroup)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := service.NewConsumer(reader, storage.NewStore(db, rdb))
	consumer.Start(ctx)
	log.Println("Aggregation Service shut down")
}
