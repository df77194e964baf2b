package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/cache"
	"github.com/swych-ai/swych_api/internal/config"
	"github.com/swych-ai/swych_api/internal/database"
	"github.com/swych-ai/swych_api/internal/handler"
	"github.com/swych-ai/swych_api/internal/middleware"
	"github.com/swych-ai/swych_api/internal/repository"
	"github.com/swych-ai/swych_api/internal/service"
	"github.com/swych-ai/swych_api/internal/worker"
	"github.com/swych-ai/swych_api/pkg/gemini"
	"github.com/swych-ai/swych_api/pkg/resend"
)

// main is the application entrypoint for the Swych.ai website backend.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting swych api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize listing cache
	listingCache := cache.NewListingCache(redisClient, cache.DefaultListingTTL)

	// 4. Initialize outbound providers. A missing key disables the feature
	// (its endpoint answers 503) instead of failing startup.
	var generator service.Generator
	if cfg.Gemini.APIKey != "" {
		generator = gemini.NewClient(gemini.Config{APIKey: cfg.Gemini.APIKey})
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - chat endpoint disabled")
	}

	var emailSender service.EmailSender
	if cfg.Resend.APIKey != "" {
		emailSender = resend.NewClient(resend.Config{APIKey: cfg.Resend.APIKey})
	} else {
		log.Warn().Msg("RESEND_API_KEY not set - contact endpoint disabled")
	}

	// 5. Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	contactRepo := repository.NewContactMessageRepository(db)

	// 6. Initialize services
	clientSvc := service.NewClientService(clientRepo, listingCache)
	testimonialSvc := service.NewTestimonialService(testimonialRepo, listingCache)
	chatSvc := service.NewChatService(generator, cfg.Gemini.Models)
	contactSvc := service.NewContactService(emailSender, contactRepo, cfg.Resend.From, cfg.Resend.To)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:      handler.NewHealthHandler(db, redisClient),
		Client:      handler.NewClientHandler(clientSvc),
		Testimonial: handler.NewTestimonialHandler(testimonialSvc),
		Chat:        handler.NewChatHandler(chatSvc),
		Contact:     handler.NewContactHandler(contactSvc),
	}

	// 8. Initialize middleware
	contactLimiter := middleware.NewContactRateLimiter(5, time.Minute)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, contactLimiter)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewCacheWarmWorker(clientSvc, testimonialSvc, cfg.Worker.CacheWarmInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health      *handler.HealthHandler
	Client      *handler.ClientHandler
	Testimonial *handler.TestimonialHandler
	Chat        *handler.ChatHandler
	Contact     *handler.ContactHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, contactLimiter *middleware.ContactRateLimiter) {
	router.GET("/api/health", handlers.Health.GetHealth)

	// Clients (verbs multiplexed on one path, id passed as query parameter)
	router.GET("/api/clients", handlers.Client.Get)
	router.POST("/api/clients", handlers.Client.Create)
	router.PUT("/api/clients", handlers.Client.Update)
	router.DELETE("/api/clients", handlers.Client.Delete)

	// Testimonials
	router.GET("/api/testimonials", handlers.Testimonial.Get)
	router.POST("/api/testimonials", handlers.Testimonial.Create)
	router.PUT("/api/testimonials", handlers.Testimonial.Update)
	router.DELETE("/api/testimonials", handlers.Testimonial.Delete)

	// Contact form and chat proxy
	router.POST("/api/send-email", contactLimiter.Handle(), handlers.Contact.Send)
	router.POST("/api/chat", handlers.Chat.Chat)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
