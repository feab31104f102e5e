package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *logging.Logger

	// Redis may be nil; caching is then off.
	Redis *redis.Client

	// Registry defaults to the prometheus default registry.
	Registry *prometheus.Registry
}

// RegisterRoutes wires the application onto r. The returned func drains
// the background queues and must be called on shutdown.
func RegisterRoutes(r *gin.Engine, d Deps) (func(), error) {

	schedule, err := booking.NewSchedule(d.Config.SlotTimes)
	if err != nil {
		return nil, err
	}

	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		reg, gatherer = d.Registry, d.Registry
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingMetrics := metrics.NewBookingMetrics(reg)

	userRepo := infraRepo.NewUserGormRepository(d.DB)
	bookingRepo := cache.NewBookingRepository(
		infraRepo.NewBookingGormRepository(d.DB),
		d.Redis,
		d.Config.CacheTTL,
		d.Logger,
	)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Logger)

	notifications := notify.NewDispatcher(notify.NewStore(d.DB), d.Logger)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.RequestMetrics(bookingMetrics))

	// ======================================================
	// 🧠 USE CASES - BOOKINGS
	// ======================================================
	ucDeps := ucBooking.Deps{
		Repo:     bookingRepo,
		Schedule: schedule,
		Location: timezone.Location(d.Config.Timezone),
		Audit:    auditDispatcher,
		Notifier: notifications,
		Metrics:  bookingMetrics,
		Logger:   d.Logger,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, d.Config, auditDispatcher, d.Logger)
	meHandler := handlers.NewMeHandler(
		userRepo,
		notifications,
		bookingRepo,
		auditDispatcher,
		d.Logger,
		d.Config.VerifyEmailDomain,
	)

	professionalHandler := handlers.NewProfessionalHandler(
		bookingRepo,
		userRepo,
		ucBooking.NewGetAvailability(ucDeps),
		d.Logger,
	)

	bookingHandler := handlers.NewBookingHandler(
		userRepo,
		d.Logger,
		ucBooking.NewCreateAppointment(ucDeps),
		ucBooking.NewCancelBooking(ucDeps),
		ucBooking.NewListBookings(ucDeps),
		ucBooking.NewDayCalendar(ucDeps),
	)

	blockHandler := handlers.NewBlockHandler(
		userRepo,
		d.Logger,
		ucBooking.NewCreateBlocks(ucDeps),
		ucBooking.NewBlockGrid(ucDeps),
	)

	adminUserHandler := handlers.NewAdminUserHandler(userRepo, bookingRepo, auditDispatcher, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, d.Logger)

	// ======================================================
	// 🩺 OPERAÇÃO
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	resident := middleware.RequireRole(booking.RoleResident)
	professional := middleware.RequireRole(booking.RoleProfessional)
	staff := middleware.RequireRole(booking.RoleProfessional, booking.RoleAdmin)
	admin := middleware.RequireRole(booking.RoleAdmin)

	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/me/notifications/next", meHandler.NextNotification)

			secured.GET("/professionals", professionalHandler.List)
			secured.GET("/professionals/:id/availability", resident, professionalHandler.Availability)

			// ------------------------------
			// RESERVAS
			// ------------------------------
			secured.POST("/bookings", resident, bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)

			secured.GET("/blocks", professional, blockHandler.Grid)
			secured.POST("/blocks", professional, blockHandler.Create)

			secured.GET("/calendar", staff, bookingHandler.Calendar)

			// ------------------------------
			// ADMIN
			// ------------------------------
			adminAPI := secured.Group("/admin")
			adminAPI.Use(admin)
			{
				adminAPI.GET("/users", adminUserHandler.List)
				adminAPI.POST("/users", adminUserHandler.Create)
				adminAPI.PUT("/users/:id", adminUserHandler.Update)
				adminAPI.DELETE("/users/:id", adminUserHandler.Delete)

				adminAPI.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return func() {
		notifications.Close()
		auditDispatcher.Close()
	}, nil
}
