package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/bookify/bookify-api/internal/audit"
	"github.com/bookify/bookify-api/internal/cache"
	"github.com/bookify/bookify-api/internal/clock"
	"github.com/bookify/bookify-api/internal/config"
	"github.com/bookify/bookify-api/internal/events"
	"github.com/bookify/bookify-api/internal/handlers"
	infraRepo "github.com/bookify/bookify-api/internal/infra/repository"
	"github.com/bookify/bookify-api/internal/middleware"
	"github.com/bookify/bookify-api/internal/notify"
	"github.com/bookify/bookify-api/internal/payments"
	ucBooking "github.com/bookify/bookify-api/internal/usecase/booking"
)

// RegisterRoutes wires the full API onto r and returns a cleanup that
// flushes and closes the infrastructure clients. Callers run it after the
// HTTP server has drained.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) func() {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	}
	notifyDispatcher := notify.NewDispatcher(notify.NewEmailSender(), producer)

	var slotCache ucBooking.SlotCache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		slotCache = cache.NewSlotCache(rdb)
	}

	var checkoutProvider payments.Provider
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Println("payments disabled:", err)
		} else {
			checkoutProvider = mp
		}
	}

	now := clock.System()

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	admitBookingUC := ucBooking.NewAdmitBooking(
		bookingRepo,
		auditDispatcher,
		notifyDispatcher,
		slotCache,
		now,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		notifyDispatcher,
		slotCache,
		now,
	)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)

	getSlotsUC := ucBooking.NewGetSlots(bookingRepo, slotCache, now)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db, bookingRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		admitBookingUC,
		cancelBookingUC,
		listBookingsUC,
		getSlotsUC,
		bookingRepo,
		checkoutProvider,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id/slots", bookingHandler.Slots)
		api.GET("/availability", availabilityHandler.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/bookings/:id/checkout", bookingHandler.Checkout)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.DELETE("/services/:id", serviceHandler.Delete)

				admin.POST("/availability", availabilityHandler.Create)
				admin.PATCH("/availability/:id", availabilityHandler.Update)
				admin.DELETE("/availability/:id", availabilityHandler.Delete)

				admin.GET("/admin/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return func() {
		if producer != nil {
			if err := producer.Close(); err != nil {
				log.Println("kafka producer close:", err)
			}
		}
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				log.Println("redis close:", err)
			}
		}
	}
}
