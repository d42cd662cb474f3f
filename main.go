package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"pos_backend/pkg/config"
	"pos_backend/pkg/database"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/routes"
	"pos_backend/pkg/services"
	"pos_backend/pkg/session"
	"pos_backend/pkg/store"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	log.Println("🔌 Initializing database connection...")
	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDatabase()

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Remote write queue
	writer := store.NewWriter(store.WriterConfig{
		Workers:     config.AppConfig.WriteWorkers,
		MaxAttempts: config.AppConfig.WriteMaxAttempts,
		Backoff:     config.WriteBackoff(),
		OnFailure: func(f store.Failure) {
			log.Printf("🚨 Sync failure needs attention: %s after %d attempts: %s", f.Description, f.Attempts, f.Error)
		},
	})

	// Order event sinks
	var sinks []store.EventSink
	feed, err := services.DialKitchenFeed(config.AppConfig.RabbitMQURL, config.AppConfig.KitchenExchange)
	if err != nil {
		log.Printf("⚠️  Warning: Kitchen feed initialization failed: %v", err)
	} else {
		log.Println("✅ Kitchen feed connected")
		sinks = append(sinks, feed)
	}

	var notifier *services.ReadyNotifier
	if err := services.InitFCM(config.AppConfig.GoogleApplicationCredentials); err != nil {
		log.Printf("⚠️  Warning: FCM initialization failed: %v", err)
	} else {
		log.Println("✅ FCM initialized successfully")
		notifier = &services.ReadyNotifier{Topic: config.AppConfig.FCMTopic}
		sinks = append(sinks, notifier)
	}

	// Initialize GCP Storage service
	if err := services.InitGCPStorage(config.AppConfig.GCPBucketName); err != nil {
		log.Printf("⚠️  Warning: GCP Storage initialization failed: %v", err)
	} else {
		log.Println("✅ GCP Storage initialized successfully")
	}

	// Text completion
	var completer services.TextCompleter
	gemini, err := services.InitGemini(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		log.Printf("⚠️  Warning: Gemini initialization failed: %v", err)
	} else {
		log.Println("✅ Gemini initialized successfully")
		completer = gemini
		defer gemini.Close()
	}

	state := store.New(store.Options{
		Store:    database.NewRepository(database.DB),
		Writer:   writer,
		Settings: store.FileSettings{Path: config.AppConfig.SettingsFile},
		Sinks:    sinks,
		Location: config.Location(),
	})
	if notifier != nil {
		notifier.TableLabel = state.TableLabel
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := state.Load(loadCtx); err != nil {
		cancelLoad()
		log.Fatal("Failed to load application state:", err)
	}

	// Idle sign-out; revoked keys stay revoked across restarts
	idle := session.NewIdleTracker(time.Duration(state.Settings().StandbyMinutes) * time.Minute)
	if revoked, err := state.RevokedSessions(loadCtx); err != nil {
		log.Printf("⚠️  Warning: could not restore revoked sessions: %v", err)
	} else {
		log.Printf("🔒 Restored %d revoked session(s)", idle.Restore(revoked))
	}
	idle.OnRevoke(state.SaveRevocation)
	cancelLoad()

	app := &middleware.App{
		State:     state,
		Idle:      idle,
		Assistant: services.NewAssistant(completer),
	}

	// Set Gin mode based on environment
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.RecoveryMiddleware())

	// Session middleware
	cookieStore := cookie.NewStore([]byte(config.AppConfig.SessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   config.AppConfig.CookieSecure == "true",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("session", cookieStore))

	setupCORS(router)

	// Menu image uploads
	router.MaxMultipartMemory = 10 << 20 // 10 MB

	routes.Setup(router, app)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server running in %s mode\n", config.AppConfig.Environment)
		log.Printf("📡 Server listening on http://localhost:%s\n", config.AppConfig.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	idle.Stop()

	// Flush queued writes before the pool closes
	if err := writer.Close(ctx); err != nil {
		log.Printf("⚠️  Write queue did not drain: %v", err)
	}
	if feed != nil {
		feed.Close()
	}

	log.Println("✅ Server exited gracefully")
}

// setupCORS configures CORS for the POS and back-office frontends
func setupCORS(router *gin.Engine) {
	isProduction := config.IsProduction()

	defaultOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}

	allowOrigins := defaultOrigins
	if isProduction && config.AppConfig.AllowedOrigins != "" {
		allowOrigins = parseOrigins(config.AppConfig.AllowedOrigins)
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if isProduction {
		corsConfig.AllowOrigins = allowOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return true // Allow all origins in development
		}
	}

	router.Use(cors.New(corsConfig))

	if isProduction {
		log.Printf("🔒 CORS enabled for origins: %v\n", allowOrigins)
	} else {
		log.Println("🔓 CORS enabled for all origins (development mode)")
	}
}

// parseOrigins splits comma-separated origin string
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
