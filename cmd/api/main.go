package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	"github.com/BruksfildServices01/shop-queue/internal/billing"
	"github.com/BruksfildServices01/shop-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/shop-queue/internal/db"
	infraRepo "github.com/BruksfildServices01/shop-queue/internal/infra/repository"
	"github.com/BruksfildServices01/shop-queue/internal/jobs"
	"github.com/BruksfildServices01/shop-queue/internal/logger"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/notify"
	"github.com/BruksfildServices01/shop-queue/internal/routes"
	"github.com/BruksfildServices01/shop-queue/internal/storage"
	"github.com/BruksfildServices01/shop-queue/internal/timezone"
	"github.com/BruksfildServices01/shop-queue/internal/tracing"
)

func main() {
	logger.Init(os.Getenv("LOG_PRETTY") == "true")

	cfg := config.Load()
	loc := timezone.Location(cfg.BusinessTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}

	db := dbpkg.NewDB(cfg)

	// ======================================================
	// 🔧 SINGLETONS
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	queueRepo := infraRepo.NewQueueGormRepository(db)
	notifier := notify.NewDispatcher(newNotifier(cfg, queueRepo))

	provider, err := newBillingProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up billing provider")
	}

	var uploads storage.Uploader
	if s3, err := storage.NewS3(cfg); err == nil {
		uploads = s3
	} else {
		log.Warn().Err(err).Msg("image uploads disabled")
	}

	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute)
	} else {
		log.Warn().Msg("REDIS_URL not set, public rate limiting disabled")
	}

	scheduler, err := jobs.New(infraRepo.NewBarberDayGormRepository(db), loc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule jobs")
	}
	scheduler.Start()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Location:    loc,
		AuditLogger: auditLogger,
		Audit:       auditDispatcher,
		Notifier:    notifier,
		Billing:     provider,
		Uploads:     uploads,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("tz", loc.String()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	scheduler.Stop()
	notifier.Close()
	auditDispatcher.Close()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}

func newNotifier(cfg *config.Config, contacts notify.ContactLookup) notify.Notifier {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		log.Warn().Msg("twilio not configured, notifications disabled")
		return notify.Noop{}
	}
	return notify.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, contacts)
}

func newBillingProvider(cfg *config.Config) (billing.Provider, error) {
	urls := billing.URLs{
		Success: cfg.CheckoutSuccessURL,
		Cancel:  cfg.CheckoutCancelURL,
		Notify:  cfg.CheckoutNotifyWebhook,
	}

	switch cfg.BillingProvider {
	case billing.ProviderStripe:
		if cfg.StripeSecretKey == "" {
			return nil, errors.New("STRIPE_SECRET_KEY is required for stripe billing")
		}
		return billing.NewStripe(cfg.StripeSecretKey, urls), nil
	case billing.ProviderMercadoPago:
		if cfg.MercadoPagoToken == "" {
			return nil, errors.New("MERCADOPAGO_ACCESS_TOKEN is required for mercadopago billing")
		}
		return billing.NewMercadoPago(cfg.MercadoPagoToken, urls)
	default:
		return billing.Noop{}, nil
	}
}
