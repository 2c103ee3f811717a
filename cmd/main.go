// matching-service
//
// Explainable talent/offer compatibility scoring and alert notifications.
// Exposes a REST API used by the Gateway to implement:
//   - match(offerRef)                — weighted MatchResult for the talent
//   - suggestions                    — published offers ranked for the talent
//   - alert CRUD + preview           — saved subscriptions and ad-hoc counts
//
// Listens for EVENT_OFFER_PUBLISHED on Redis to run the instant alert
// dispatch, runs the daily/weekly digest batches on cron, and publishes
// EVENT_NOTIFICATION_CREATED for Gateway SSE forward.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentmatch/matching-service/internal/alert"
	"talentmatch/matching-service/internal/config"
	"talentmatch/matching-service/internal/db"
	"talentmatch/matching-service/internal/events"
	"talentmatch/matching-service/internal/matching"
	"talentmatch/matching-service/internal/notify"
	"talentmatch/matching-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[matching-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[matching-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[matching-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[matching-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[matching-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[matching-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[matching-service] Redis connected ✓")

	// ── Wiring ───────────────────────────────────────────────────────────────
	talents := store.NewTalentStore(pool)
	offers := store.NewOfferStore(pool)
	alerts := store.NewAlertStore(pool)
	notifications := store.NewNotificationStore(pool)

	sink := notify.NewSink(notifications, rdb)
	matchSvc := matching.NewService(talents, offers)
	alertSvc := alert.NewService(alerts, offers)
	dispatcher := alert.NewDispatcher(alerts, offers, sink)

	// ── Cron + event subscription ────────────────────────────────────────────
	scheduler := alert.NewScheduler(dispatcher, cfg.CronSpecDaily, cfg.CronSpecWeekly)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("[matching-service] Scheduler: %v", err)
	}
	defer scheduler.Stop()

	subscriber := events.NewSubscriber(rdb, dispatcher)
	go subscriber.Run(ctx)

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	matching.NewHandler(matchSvc).RegisterRoutes(mux)
	alert.NewHandler(alertSvc, dispatcher).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[matching-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[matching-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[matching-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[matching-service] Shutdown error: %v", err)
	}
	log.Println("[matching-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "matching-service",
		"version": version,
	})
}
