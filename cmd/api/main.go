package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/cache"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/handler"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/middleware"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/repository"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/config"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	teacherRepo := repository.NewSQLRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	pageCache := cache.NewRedisPageCache(redisClient)

	authService := services.NewGoogleOAuthService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.AuthSecret,
		cfg.SessionTTL,
		cfg.AdminEmails,
		teacherRepo,
		redisClient,
	)
	approvalService := services.NewSignupApprovalService(teacherRepo, pageCache)

	accessGate := middleware.NewAccessGate(cfg.AuthSecret)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	pageHandler := handler.NewPageHandler()
	signupHandler := handler.NewSignupHandler(approvalService, pageCache)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Probes and metrics (gate bypasses these)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)
	mux.Handle("/metrics", promhttp.Handler())

	// OAuth handshake (gate bypasses /auth/)
	mux.HandleFunc("/auth/google/login", authHandler.GoogleLogin)
	mux.HandleFunc("/auth/google/callback", authHandler.GoogleCallback)

	// Pages behind the gate
	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/logout", authHandler.Logout)
	mux.HandleFunc("/pending", pageHandler.Pending)
	mux.HandleFunc("/rejected", pageHandler.Rejected)
	mux.HandleFunc("/attendance", pageHandler.Attendance)
	mux.HandleFunc("/students", pageHandler.Students)
	mux.HandleFunc("/teachers", pageHandler.Teachers)
	mux.HandleFunc("/recreation", pageHandler.Recreation)

	// Admin (gate enforces ADMIN on the /signup-management prefix; the
	// handler checks again)
	mux.HandleFunc("/signup-management", signupHandler.Manage)
	mux.HandleFunc("/signup-management/approve", signupHandler.Approve)
	mux.HandleFunc("/signup-management/reject", signupHandler.Reject)

	mux.HandleFunc("/", pageHandler.Home)

	root := middleware.CORSMiddleware(cfg.AllowedOrigins)(accessGate.Wrap(mux))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
