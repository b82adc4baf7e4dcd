package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/barberflow/booking-api/internal/audit"
	"github.com/barberflow/booking-api/internal/cache"
	"github.com/barberflow/booking-api/internal/config"
	dbpkg "github.com/barberflow/booking-api/internal/db"
	infraRepo "github.com/barberflow/booking-api/internal/infra/repository"
	"github.com/barberflow/booking-api/internal/metrics"
	"github.com/barberflow/booking-api/internal/middleware"
	"github.com/barberflow/booking-api/internal/routes"
	"github.com/barberflow/booking-api/internal/schedule"
	"github.com/barberflow/booking-api/internal/sweeper"
	"github.com/barberflow/booking-api/internal/timezone"
)

func main() {

	cfg := config.Load()

	registry, err := schedule.Load(cfg.MastersScheduleJSON)
	if err != nil {
		log.Fatalf("invalid masters schedule: %v", err)
	}

	db := dbpkg.NewDB(cfg)
	repo := infraRepo.NewBookingGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	promRegistry := prometheus.NewRegistry()
	collector := metrics.NewCollector(promRegistry)

	redisClient := cache.NewRedisClient(cfg)
	if redisClient == nil && cfg.RedisAddr != "" {
		log.Printf("redis at %s unreachable, availability cache disabled", cfg.RedisAddr)
	}
	avCache := cache.NewAvailability(redisClient, 10*time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := timezone.Location(cfg.Timezone)
	sw := sweeper.New(
		repo,
		cfg.RetentionDays,
		cfg.CleanupHour,
		auditDispatcher,
		collector,
		func() time.Time { return time.Now().In(loc) },
	)
	go sw.Run(ctx)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, registry, repo, auditDispatcher, collector, avCache, promRegistry)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
