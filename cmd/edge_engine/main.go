package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/hetulpatel/OddsEdge/internal/cache"
	"github.com/hetulpatel/OddsEdge/internal/edge"
	"github.com/hetulpatel/OddsEdge/internal/feeds/injuries"
	"github.com/hetulpatel/OddsEdge/internal/feeds/oddsfeed"
	kafkautil "github.com/hetulpatel/OddsEdge/internal/kafka"
	"github.com/hetulpatel/OddsEdge/internal/logging"
	"github.com/hetulpatel/OddsEdge/internal/movement"
	"github.com/hetulpatel/OddsEdge/internal/pipeline"
	"github.com/hetulpatel/OddsEdge/internal/queue"
)

func main() {
	godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	apiKey := os.Getenv("ODDS_API_KEY")
	if apiKey == "" {
		logging.Fatalf("[edge-engine] ODDS_API_KEY is required")
	}

	sports := envList("EDGE_SPORTS", []string{"basketball_nba", "americanfootball_nfl", "icehockey_nhl", "baseball_mlb"})
	interval := envDuration("EDGE_REFRESH_INTERVAL", 2*time.Minute)

	feed := oddsfeed.NewClient(oddsfeed.Config{
		BaseURL: os.Getenv("ODDS_API_BASE_URL"),
		APIKey:  apiKey,
		Regions: os.Getenv("ODDS_API_REGIONS"),
	})

	var injuryFeed pipeline.InjuryFeed
	if envBool("INJURY_FEED_ENABLED", true) {
		injuryFeed = injuries.NewClient(injuries.Config{
			BaseURL: os.Getenv("ODDS_API_BASE_URL"),
			APIKey:  apiKey,
		})
	}

	quotes := setupCache()
	defer func() {
		if quotes != nil {
			quotes.Close()
		}
	}()

	edgeWriter := setupWriter(ctx, "EDGE_KAFKA_TOPIC", kafkautil.DefaultEdgeTopic)
	moveWriter := setupWriter(ctx, "MOVEMENT_KAFKA_TOPIC", kafkautil.DefaultMovementTopic)
	defer closeWriter(edgeWriter)
	defer closeWriter(moveWriter)

	tracker := movement.NewDetector(envInt("MOVEMENT_HISTORY_CAP", 0), envInt("MOVEMENT_EVENT_CAP", 0))
	p := pipeline.New(feed, injuryFeed, quotes, tracker, pipeline.Config{
		Sports: sports,
		Detector: edge.Config{
			MinBooks:           envInt("EDGE_MIN_BOOKS", 0),
			MinEV:              envFloat("EDGE_MIN_EV", 0),
			MaxEV:              envFloat("EDGE_MAX_EV", 0),
			MinLineDiscrepancy: envInt("EDGE_MIN_DISCREPANCY", 0),
		},
	})

	logging.Infof("[edge-engine] starting: sports=%v interval=%s", sports, interval)
	pipeline.RunLoop(ctx, p, interval, func(ctx context.Context, res *pipeline.Result) error {
		logging.Infof("[edge-engine] cycle: edges=%d movements=%d failed_sports=%v",
			len(res.Edges), len(res.Movements), res.FailedSports)
		for _, e := range res.Edges {
			logging.Infof("[edge-engine] edge %s", e)
		}
		if err := queue.PublishEdges(ctx, edgeWriter, res.Edges); err != nil {
			logging.Errorf("[edge-engine] publish edges: %v", err)
		}
		if err := queue.PublishMovements(ctx, moveWriter, res.Movements); err != nil {
			logging.Errorf("[edge-engine] publish movements: %v", err)
		}
		return nil
	})
}

func setupCache() cache.QuoteCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logging.Infof("[edge-engine] REDIS_ADDR unset, running uncached")
		return nil
	}
	quotes, err := cache.NewRedisQuoteCache(
		addr,
		os.Getenv("REDIS_PASSWORD"),
		envInt("REDIS_DB", 0),
		envDuration("QUOTE_CACHE_TTL", 0),
		"",
	)
	if err != nil {
		logging.Errorf("[edge-engine] redis cache unavailable: %v", err)
		return nil
	}
	return quotes
}

func setupWriter(ctx context.Context, envKey, fallbackTopic string) *kafkago.Writer {
	brokers := kafkautil.Brokers()
	topic := kafkautil.TopicFromEnv(envKey, fallbackTopic)
	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()
	if err := kafkautil.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Errorf("[edge-engine] kafka unavailable for %s: %v", topic, err)
		return nil
	}
	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	if err := kafkautil.EnsureTopic(ensureCtx, brokers, topic); err != nil {
		logging.Errorf("[edge-engine] ensure topic %s warning: %v", topic, err)
	}
	cancelEnsure()
	return kafkautil.NewWriter(brokers, topic)
}

func closeWriter(w *kafkago.Writer) {
	if w != nil {
		w.Close()
	}
}

func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return def
}
