package service

import (
	"context"
	"net"
	"net/http"
	"net/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driftwood/app/auth"
	"driftwood/app/controllers"
	"driftwood/app/moderation"
	"driftwood/app/notify"
	"driftwood/app/ratelimit"
	"driftwood/app/repositories"
	"driftwood/app/services"
	"driftwood/app/storage"
	"driftwood/config"
	"driftwood/pkg/logger"
	"driftwood/routes"
)

// RunAppServer wires the application together and serves it until
// interrupted.
func RunAppServer() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.DBPath != "" {
		dbPath = cfg.DBPath
	}

	db, err := repositories.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open upload directory")
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	reviewRepo := repositories.NewBadgerReviewRepository(db)
	serviceRepo := repositories.NewBadgerServiceRepository(db)
	categoryRepo := repositories.NewBadgerCategoryRepository(db)

	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.SMTPAddr != "" && cfg.SMTPFrom != "" {
		var smtpAuth smtp.Auth
		if cfg.SMTPUser != "" {
			host, _, _ := net.SplitHostPort(cfg.SMTPAddr)
			smtpAuth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, host)
		}
		notifier = notify.NewSMTPNotifier(cfg.SMTPAddr, cfg.SMTPFrom, smtpAuth)
	}

	grants := auth.NewBadgerGrantStore(db)
	engine := moderation.NewEngine(grants, notifier, postRepo, commentRepo, reviewRepo,
		moderation.Config{
			SiteURL:        cfg.SiteURL,
			AdminURL:       cfg.AdminURL,
			ModeratorEmail: cfg.ModeratorEmail,
		}, log)

	limiter := ratelimit.New(ratelimit.NewBadgerStore(db)).
		WithLimits(cfg.RateLimit, cfg.RateLimitWindow)

	postService := services.NewPostService(postRepo, commentRepo, reviewRepo, categoryRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, limiter, engine, log)
	reviewService := services.NewReviewService(reviewRepo, postRepo, blobs, engine, log)
	catalogService := services.NewCatalogService(serviceRepo)
	bookingService := services.NewBookingService(notifier, cfg.StaffEmail, log)
	moderationService := services.NewModerationService(engine, commentRepo, reviewRepo)

	router := routes.SetupRoutes(&routes.Controllers{
		Posts:    controllers.NewPostController(postService),
		Comments: controllers.NewCommentController(commentService),
		Reviews:  controllers.NewReviewController(reviewService),
		Catalog:  controllers.NewCatalogController(catalogService),
		Bookings: controllers.NewBookingController(bookingService),
		Admin:    controllers.NewAdminController(moderationService),
	}, log, cfg.StaticDir, cfg.UploadDir)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
