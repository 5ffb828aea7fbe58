package api

import (
	"net/http"

	"github.com/dkellner/daybook/internal/api/handler"
	customMiddleware "github.com/dkellner/daybook/internal/api/middleware"
	"github.com/dkellner/daybook/internal/assistant"
	"github.com/dkellner/daybook/internal/assistant/anthropic"
	"github.com/dkellner/daybook/internal/assistant/gemini"
	"github.com/dkellner/daybook/internal/assistant/ollama"
	"github.com/dkellner/daybook/internal/config"
	"github.com/dkellner/daybook/internal/repository/postgres"
	"github.com/dkellner/daybook/internal/repository/redis"
	"github.com/dkellner/daybook/internal/security"
	"github.com/dkellner/daybook/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Chat transcripts are encrypted at rest; the key is derived from the
	// JWT secret, clamped to AES-256 length.
	encryptionKey := []byte(cfg.Auth.JWTSecret)
	if len(encryptionKey) > 32 {
		encryptionKey = encryptionKey[:32]
	} else if len(encryptionKey) < 32 {
		padded := make([]byte, 32)
		copy(padded, encryptionKey)
		encryptionKey = padded
	}
	encryptor, _ := security.NewEncryptor(encryptionKey)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	noteRepo := postgres.NewNoteRepository(db.Pool)

	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	chatLogStore := redis.NewChatLogStore(redisClient, encryptor, cfg.Journal.ChatLogTTL)

	// Register assistant providers
	providers := assistant.NewRouter(cfg.Assistant.DefaultProvider)
	log.Info().Msgf("Initializing assistant providers. Default: %s", cfg.Assistant.DefaultProvider)

	if cfg.Assistant.Anthropic.APIKey != "" {
		providers.RegisterProvider(anthropic.NewProvider(cfg.Assistant.Anthropic.APIKey, cfg.Assistant.Anthropic.Model))
	}
	if cfg.Assistant.Gemini.APIKey != "" {
		providers.RegisterProvider(gemini.NewProvider(cfg.Assistant.Gemini))
	}
	if cfg.Assistant.Ollama.Host != "" {
		log.Info().Str("host", cfg.Assistant.Ollama.Host).Msg("Registering Ollama provider")
		providers.RegisterProvider(ollama.NewProvider(cfg.Assistant.Ollama.Host, cfg.Assistant.Ollama.DefaultModel))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	noteService := service.NewNoteService(noteRepo)
	chatService := service.NewChatService(
		chatLogStore,
		noteRepo,
		providers,
		cfg.Journal.SessionIdleTTL,
		cfg.Assistant.MaxTokens,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	chatHandler := handler.NewChatHandler(chatService)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/me", authHandler.Me)
			r.Get("/assistant-providers", handler.ListProviders(providers))

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.List)
				r.Get("/search", noteHandler.Search)
				r.Get("/{date}", noteHandler.Get)
				r.Put("/{date}", noteHandler.Save)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Get("/", chatHandler.Get)
				r.Post("/new", chatHandler.StartNew)
				r.Post("/messages", chatHandler.Send)
				r.Delete("/sessions/{sessionID}", chatHandler.DeleteSession)
			})
		})
	})

	return r
}
