package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/barberflow/booking-api/internal/audit"
	"github.com/barberflow/booking-api/internal/cache"
	"github.com/barberflow/booking-api/internal/config"
	domain "github.com/barberflow/booking-api/internal/domain/booking"
	"github.com/barberflow/booking-api/internal/handlers"
	"github.com/barberflow/booking-api/internal/metrics"
	"github.com/barberflow/booking-api/internal/middleware"
	"github.com/barberflow/booking-api/internal/schedule"
	"github.com/barberflow/booking-api/internal/timezone"
	ucBooking "github.com/barberflow/booking-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	registry *schedule.Registry,
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	collector *metrics.Collector,
	avCache *cache.Availability,
	gatherer prometheus.Gatherer,
) {

	loc := timezone.Location(cfg.Timezone)
	now := func() time.Time { return time.Now().In(loc) }

	// ======================================================
	// USE CASES
	// ======================================================
	gen := domain.NewGenerator(
		registry,
		time.Duration(cfg.SlotDurationMinutes)*time.Minute,
		now,
	)

	availabilityUC := ucBooking.NewAvailability(
		registry,
		repo,
		gen,
		cfg.BookingDaysAhead,
		avCache,
		now,
	)

	reserveUC := ucBooking.NewReserve(
		registry,
		repo,
		gen,
		auditDispatcher,
		collector,
		avCache,
	)

	cancelUC := ucBooking.NewCancel(
		repo,
		auditDispatcher,
		collector,
		avCache,
	)

	listingsUC := ucBooking.NewListings(repo, now)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg)
	catalogHandler := handlers.NewCatalogHandler(repo, registry)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, loc)
	bookingHandler := handlers.NewBookingHandler(reserveUC, cancelUC, listingsUC, loc)
	adminHandler := handlers.NewAdminHandler(listingsUC, loc)

	rateLimiter := middleware.NewRateLimiter(cfg.RatePerMinute, cfg.RateBurst)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	api := r.Group("/api")
	{
		api.POST("/auth/token", authHandler.Token)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg), rateLimiter.Middleware())
		{
			secured.GET("/services", catalogHandler.ListServices)
			secured.GET("/masters", catalogHandler.ListMasters)

			secured.GET("/masters/:master/dates", availabilityHandler.Dates)
			secured.GET("/masters/:master/slots", availabilityHandler.Slots)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/my", bookingHandler.My)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			admin := secured.Group("/admin")
			admin.Use(middleware.AdminMiddleware(cfg))
			{
				admin.GET("/bookings", adminHandler.BookingsByDate)
			}
		}
	}
}
