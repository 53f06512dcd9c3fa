package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db, cfg.Trust)

	availabilityCache := cache.New(
		cfg.RedisAddr,
		cfg.RedisPassword,
		time.Duration(cfg.AvailabilityCacheTTLSec)*time.Second,
		logger,
	)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ======================================================
	// USE CASES: BOOKING
	// ======================================================
	availabilityUC := booking.NewGetAvailability(bookingRepo, availabilityCache)

	bookUC := booking.NewBookReservation(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
	)

	changeStatusUC := booking.NewChangeReservationStatus(
		bookingRepo,
		availabilityCache,
		auditDispatcher,
		cfg.Trust,
	)

	listByDateUC := booking.NewListReservationsByDate(bookingRepo)
	listByMonthUC := booking.NewListReservationsByMonth(bookingRepo)

	// ======================================================
	// USE CASES: TRUST
	// ======================================================
	scoreUC := booking.NewGetClientScore(bookingRepo, cfg.Trust)
	adjustmentUC := booking.NewRecordAdjustment(bookingRepo, cfg.Trust, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	clientHandler := handlers.NewClientHandler(db, scoreUC, adjustmentUC)
	availabilityWindowHandler := handlers.NewAvailabilityWindowHandler(db)

	reservationHandler := handlers.NewReservationHandler(
		bookUC,
		changeStatusUC,
		listByDateUC,
		listByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, bookUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (booking page)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/reservations", publicHandler.BookReservation)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API (staff dashboard)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id/score", clientHandler.GetScore)
			secured.POST("/me/clients/:id/score-adjustments", clientHandler.AdjustScore)

			secured.GET("/me/availability-windows", availabilityWindowHandler.Get)
			secured.PUT("/me/availability-windows", availabilityWindowHandler.Update)
			secured.POST("/me/availability-windows/exceptions", availabilityWindowHandler.CreateException)
			secured.DELETE("/me/availability-windows/exceptions/:id", availabilityWindowHandler.DeleteException)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/me/reservations", reservationHandler.Create)
			secured.GET("/me/reservations", reservationHandler.ListByDate)
			secured.GET("/me/reservations/month", reservationHandler.ListByMonth)
			secured.PATCH("/me/reservations/:id/status", reservationHandler.ChangeStatus)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
