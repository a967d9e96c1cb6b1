package main

import (
	"context"
	"flag"
	"log"
	"time"

	"restaurant-hub/config"
	httpapi "restaurant-hub/restaurant-svc/internal/api/http"
	"restaurant-hub/restaurant-svc/internal/service"
	"restaurant-hub/restaurant-svc/internal/storage"

	"github.com/redis/go-redis/v9"
)

const reviewMarkerTTL = 24 * 7 * time.Hour

type sideEffects struct {
	cache     service.ReviewCache
	board     service.PopularityBoard
	publisher service.EventPublisher
}

// newSessionStore picks the session backend. The memory store needs no Redis.
func newSessionStore(backend string, rdb *redis.Client, ttl time.Duration) service.SessionStore {
	if backend == "memory" || rdb == nil {
		log.Println("Using in-memory session store")
		return storage.NewMemorySessionStore()
	}
	return storage.NewRedisSessionStore(rdb, ttl)
}

func newHandler(cfg config.Config, repo *storage.PostgresRepository, sessions service.SessionStore, fx sideEffects) *httpapi.Handler {
	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}
	return &httpapi.Handler{
		Home:         service.NewHomeService(repo, repo, cfg.Contact),
		Menu:         service.NewMenuService(repo, cfg.UploadDir),
		Drafts:       service.NewDraftService(sessions, repo),
		Checkout:     service.NewCheckoutService(repo, sessions, qr, fx.publisher),
		Orders:       service.NewOrderService(repo, qr, fx.publisher),
		Reservations: service.NewReservationService(repo),
		Reviews:      service.NewReviewService(repo, repo, fx.cache, fx.publisher),
		Auth:         service.NewAuthService(repo, sessions, repo, repo, repo),
		Dashboard:    service.NewDashboardService(repo, repo, repo, fx.board),
		UploadDir:    cfg.UploadDir,
	}
}

func main() {
	grantStaff := flag.String("grant-staff", "", "add the named user to the Staff group and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var rdb *redis.Client
	var fx sideEffects
	if cfg.SessionBackend != "memory" {
		rdb = config.MustInitRedis()
		defer rdb.Close()

		cache := storage.NewRedisCache(rdb, reviewMarkerTTL)
		fx.cache, fx.board = cache, cache
	}

	if cfg.KafkaBroker != "" {
		publisher := storage.NewKafkaPublisher(
			config.NewKafkaWriter(storage.ReviewsTopic),
			config.NewKafkaWriter(storage.OrdersTopic),
		)
		defer publisher.Close()
		fx.publisher = publisher
	} else {
		log.Println("Warning: KAFKA_BROKER is not set, events will not be published")
	}

	sessions := newSessionStore(cfg.SessionBackend, rdb, cfg.SessionTTL)
	handler := newHandler(cfg, repo, sessions, fx)

	if *grantStaff != "" {
		if err := handler.Auth.GrantStaff(ctx, *grantStaff); err != nil {
			log.Fatalf("Failed to grant staff to %s: %v", *grantStaff, err)
		}
		return
	}

	httpapi.StartServer(cfg.HTTPAddr, httpapi.NewRouter(handler, sessions, cfg.SessionTTL, cfg.AllowedOrigins...))
}
