package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"proinc-backend/internal/admin"
	"proinc-backend/internal/database"
	"proinc-backend/internal/form"
	"proinc-backend/internal/handlers"
	"proinc-backend/internal/identity"
	"proinc-backend/internal/mailer"
	customMiddleware "proinc-backend/internal/middleware"
	"proinc-backend/internal/registration"
	"proinc-backend/internal/repository"
	"proinc-backend/internal/watch"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	// Required env vars
	mongoURI := getEnv("MONGODB_URI", "")
	dbName := getEnv("DB_NAME", "proinc")
	jwtSecret := getEnv("JWT_SECRET", "")
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	port := getEnv("PORT", "8080")

	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URI is required")
	}
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	// Connect to MongoDB
	db, err := database.Connect(mongoURI, dbName)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	// Initialize repositories
	accountRepo := repository.NewAccountRepo(db.DB)
	tokenRepo := repository.NewVerificationTokenRepo(db.DB)
	userRepo := repository.NewUserRepo(db.DB)
	companyRepo := repository.NewCompanyRepo(db.DB)
	paymentRepo := repository.NewPaymentRepo(db.DB)
	documentRepo := repository.NewDocumentRepo(db.DB)
	declinedRepo := repository.NewDeclinedUserRepo(db.DB)

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create account indexes: %v", err)
	}
	if err := tokenRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create token indexes: %v", err)
	}

	// Initialize mailer (mock when no API key is configured)
	var mail mailer.Mailer
	if apiKey := os.Getenv("RESEND_API_KEY"); apiKey != "" {
		mail = mailer.NewResendMailer(apiKey, getEnv("FROM_EMAIL", "noreply@proinc.example"))
	} else {
		log.Println("⚠️  RESEND_API_KEY not set, using mock mailer")
		mail = mailer.NewMockMailer()
	}

	// Identity provider and condition watchers
	provider := identity.NewProvider(accountRepo, tokenRepo, mail, jwtSecret, baseURL)
	poller := watch.NewVerificationPoller(provider, watch.DefaultPollInterval)
	subscriber := watch.NewApprovalSubscriber(userRepo)

	// Registration write path and form controller
	registrar := registration.NewService(companyRepo, userRepo, paymentRepo, documentRepo)
	controller := form.NewController(registrar)

	// Admin moderation console
	console := admin.NewConsole(userRepo, declinedRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(provider)
	onboardingHandler := handlers.NewOnboardingHandler(provider, userRepo, poller, subscriber)
	registrationHandler := handlers.NewRegistrationHandler(controller, provider)
	adminHandler := handlers.NewAdminHandler(console)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"proinc-backend"}`))
	})

	// Public routes (no auth required)
	r.Post("/auth/signup", authHandler.SignUp)
	r.Post("/auth/signin", authHandler.SignIn)
	r.Post("/auth/federated", authHandler.Federated)
	r.Get("/auth/verify", authHandler.VerifyEmail)

	// Protected routes (JWT required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(jwtSecret))

		r.Get("/auth/session", authHandler.Session)
		r.Post("/auth/signout", authHandler.SignOut)
		r.Post("/auth/resend-verification", authHandler.ResendVerification)

		r.Get("/onboarding/state", onboardingHandler.State)
		r.Get("/onboarding/await-verification", onboardingHandler.AwaitVerification)
		r.Get("/onboarding/await-approval", onboardingHandler.AwaitApproval)

		r.Get("/registration/draft", registrationHandler.GetDraft)
		r.Put("/registration/draft", registrationHandler.UpdateField)
		r.Post("/registration/advance", registrationHandler.Advance)
		r.Post("/registration/retreat", registrationHandler.Retreat)
		r.Post("/registration/files", registrationHandler.AddFiles)
		r.Post("/registration/files/progress", registrationHandler.SetProgress)
		r.Delete("/registration/files/{name}", registrationHandler.RemoveFile)
		r.Post("/registration/submit", registrationHandler.Submit)

		// Admin routes (role check against the users collection)
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.AdminOnly(userRepo))

			r.Get("/admin/users", adminHandler.ListUsers)
			r.Post("/admin/users/{id}/approve", adminHandler.Approve)
			r.Post("/admin/users/{id}/role", adminHandler.ToggleRole)
			r.Post("/admin/users/{id}/decline", adminHandler.Decline)
		})
	})

	// Start server
	log.Printf("🚀 Pro Inc. backend starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
