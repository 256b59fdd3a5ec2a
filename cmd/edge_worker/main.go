package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hetulpatel/OddsEdge/internal/kafka"
	"github.com/hetulpatel/OddsEdge/internal/logging"
	"github.com/hetulpatel/OddsEdge/internal/models"
	sqlstore "github.com/hetulpatel/OddsEdge/internal/storage/sqlite"
	"github.com/hetulpatel/OddsEdge/internal/workers"
)

func main() {
	godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	brokers := kafka.Brokers()
	topic := kafka.TopicFromEnv("EDGE_KAFKA_TOPIC", kafka.DefaultEdgeTopic)
	group := envString("EDGE_WORKER_GROUP", "edge-worker")
	workerCount := envInt("EDGE_WORKER_COUNT", 1)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Fatalf("[edge-worker] wait for broker: %v", err)
	}
	cancel()

	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	if err := kafka.EnsureTopic(ensureCtx, brokers, topic); err != nil {
		logging.Errorf("[edge-worker] ensure topic warning: %v", err)
	}
	cancelEnsure()

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		logging.Fatalf("[edge-worker] open sqlite: %v", err)
	}
	defer store.Close()
	if err := store.CreateTables(ctx); err != nil {
		logging.Fatalf("[edge-worker] create tables: %v", err)
	}

	logging.Infof("[edge-worker] consuming %s with group %s (%d workers)", topic, group, workerCount)
	workers.Run(ctx, brokers, topic, group, workerCount, func(ctx context.Context, e *models.Edge) error {
		logging.Infof("[edge-worker] storing edge %s", e)
		return store.InsertEdges(ctx, []models.Edge{*e})
	})
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
