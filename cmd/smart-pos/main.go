package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nurak20/smart-pos-web/internal/api"
	"github.com/nurak20/smart-pos-web/internal/auth"
	"github.com/nurak20/smart-pos-web/internal/cart"
	"github.com/nurak20/smart-pos-web/internal/catalog"
	"github.com/nurak20/smart-pos-web/internal/checkout"
	"github.com/nurak20/smart-pos-web/internal/events"
	"github.com/nurak20/smart-pos-web/internal/notify"
	"github.com/nurak20/smart-pos-web/internal/persistence"
	"github.com/nurak20/smart-pos-web/internal/server"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	RedisAddr       string
	RedisPassword   string
	TerminalID      string
	TelegramChatIDs []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:2000/api"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		TerminalID:      getEnv("TERMINAL_ID", "pos-1"),
		TelegramChatIDs: splitList(getEnv("TELEGRAM_CHAT_IDS", "1415543660,5006388556")),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Printf("Connected to Redis at %s", cfg.RedisAddr)

	session := auth.NewSession()
	client := api.NewClient(cfg.APIBaseURL, session)

	slot := persistence.NewRedisSlot(redisClient, cfg.TerminalID)
	cartStore := cart.NewStore(ctx, slot)

	cache := catalog.NewCache(client)
	cache.Refresh(ctx)
	log.Printf("Catalog loaded: %d products", len(cache.Items()))

	bus := events.NewBus()
	defer bus.Close()

	orchestrator := checkout.NewOrchestrator(cartStore, client, cache, bus)

	notifyCtx, stopNotifier := context.WithCancel(ctx)
	defer stopNotifier()
	notifier := notify.NewNotifier(client, cfg.TelegramChatIDs)
	go func() {
		if err := notifier.Run(notifyCtx, bus); err != nil {
			log.Printf("notifier stopped: %v", err)
		}
	}()

	router := server.NewRouter(server.Handlers{
		Catalog:  server.NewCatalogHandler(cache),
		Cart:     server.NewCartHandler(cartStore, cache),
		Checkout: server.NewCheckoutHandler(orchestrator),
		Admin:    server.NewAdminHandler(client),
		Auth:     server.NewAuthHandler(session, client),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("POS terminal %s listening on :%s", cfg.TerminalID, cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down terminal...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("terminal stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
