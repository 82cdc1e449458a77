package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	"github.com/BruksfildServices01/shop-queue/internal/billing"
	"github.com/BruksfildServices01/shop-queue/internal/config"
	"github.com/BruksfildServices01/shop-queue/internal/handlers"
	infraRepo "github.com/BruksfildServices01/shop-queue/internal/infra/repository"
	"github.com/BruksfildServices01/shop-queue/internal/logger"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/notify"
	"github.com/BruksfildServices01/shop-queue/internal/storage"
	ucAppointment "github.com/BruksfildServices01/shop-queue/internal/usecase/appointment"
	ucQueue "github.com/BruksfildServices01/shop-queue/internal/usecase/queue"
)

// Deps são os singletons montados no main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Location *time.Location

	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher
	Notifier    *notify.Dispatcher
	Billing     billing.Provider
	Uploads     storage.Uploader
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		logger.GinLogger(),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigins),
	)

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	queueRepo := infraRepo.NewQueueGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Location)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Location)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, d.Location)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	noShowAppointmentUC := ucAppointment.NewMarkAppointmentNoShow(appointmentRepo, d.Audit)

	// ======================================================
	// 🧠 USE CASES: QUEUE
	// ======================================================
	joinQueueUC := ucQueue.NewJoinQueue(queueRepo, d.Audit)
	waitEstimateUC := ucQueue.NewGetWaitEstimate(queueRepo)
	markDoneUC := ucQueue.NewMarkDone(queueRepo, d.Audit, d.Billing, d.Config.BillingCurrency)
	completeAppointmentUC := ucQueue.NewCompleteAppointment(queueRepo, markDoneUC)

	queueUC := handlers.QueueUseCases{
		List:    ucQueue.NewListQueue(queueRepo),
		Join:    joinQueueUC,
		Start:   ucQueue.NewStartService(queueRepo, d.Audit, d.Notifier),
		Done:    markDoneUC,
		NoShow:  ucQueue.NewMarkNoShow(queueRepo, d.Audit),
		Requeue: ucQueue.NewRequeue(queueRepo, d.Audit),
		Delete:  ucQueue.NewDeleteEntry(queueRepo, d.Audit),
		CheckIn: ucQueue.NewCheckInAppointment(queueRepo, d.Audit),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	publicHandler := handlers.NewPublicHandler(d.DB, joinQueueUC, waitEstimateUC, createAppointmentUC)

	meHandler := handlers.NewMeHandler(d.DB)
	shopHandler := handlers.NewShopHandler(d.DB, d.Uploads)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Audit, d.Uploads)
	clientHandler := handlers.NewClientHandler(d.DB)
	queueHandler := handlers.NewQueueHandler(queueUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		d.Location,
		listAppointmentsUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		noShowAppointmentUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(d.RateLimiter.Middleware())
		{
			publicAPI.POST("/availability", availabilityHandler.Slots)

			publicAPI.GET("/:slug", publicHandler.Shop)
			publicAPI.POST("/:slug/queue", publicHandler.JoinQueue)
			publicAPI.GET("/:slug/barbers/:barberId/wait", publicHandler.WaitEstimate)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/shop", shopHandler.Get)
			secured.PATCH("/me/shop", shopHandler.Update)
			secured.POST("/me/shop/logo", shopHandler.UploadLogo)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id/working", barberHandler.SetWorking)
			secured.POST("/me/barbers/:id/break", barberHandler.StartBreak)
			secured.DELETE("/me/barbers/:id/break", barberHandler.EndBreak)
			secured.POST("/me/barbers/:id/avatar", barberHandler.UploadAvatar)

			secured.GET("/me/clients", clientHandler.List)

			// ------------------------------
			// QUEUE
			// ------------------------------
			secured.GET("/me/queue", queueHandler.List)
			secured.POST("/me/queue", queueHandler.Join)
			secured.POST("/me/queue/:id/start", queueHandler.Start)
			secured.POST("/me/queue/:id/done", queueHandler.Done)
			secured.POST("/me/queue/:id/no-show", queueHandler.NoShow)
			secured.POST("/me/queue/:id/requeue", queueHandler.Requeue)
			secured.DELETE("/me/queue/:id", queueHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.POST("/me/appointments/:id/check-in", queueHandler.CheckIn)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
