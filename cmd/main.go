package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/config"
	"github.com/garry1963/golf-society-manager-sub000/db"
	"github.com/garry1963/golf-society-manager-sub000/handlers"
	"github.com/garry1963/golf-society-manager-sub000/leaderboard"
	"github.com/garry1963/golf-society-manager-sub000/middleware"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	api "github.com/garry1963/golf-society-manager-sub000/routes"
	"github.com/garry1963/golf-society-manager-sub000/services"
	"github.com/garry1963/golf-society-manager-sub000/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	handlers.SetLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize object storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("object storage initialized")
	} else {
		logger.Info("object storage not configured, uploads disabled")
	}

	hub := leaderboard.NewHub(logger)
	go hub.Run()

	memberRepo := repositories.NewPostgresMemberRepository(dbConn)
	courseRepo := repositories.NewPostgresCourseRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	rosterRepo := repositories.NewPostgresRosterRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	inviteRepo := repositories.NewPostgresInviteRepository(dbConn)
	logger.Info("repositories initialized")

	emailService := services.NewEmailService(cfg)
	var mailer services.ResultsMailer
	var inviteMailer services.InviteMailer
	if cfg.SMTPHost != "" {
		mailer = emailService
		inviteMailer = emailService
	}

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	memberService := services.NewMemberService(memberRepo, uploader)
	courseService := services.NewCourseService(courseRepo, uploader)
	seasonService := services.NewSeasonService(seasonRepo)
	scoreService := services.NewScoreService(scoreRepo, tournamentRepo, rosterRepo, courseRepo, hub)
	tournamentService := services.NewTournamentService(
		dbConn,
		tournamentRepo,
		rosterRepo,
		memberRepo,
		courseRepo,
		seasonRepo,
		scoreRepo,
		hub,
		mailer,
		logger,
	)
	standingsService := services.NewStandingsService(memberRepo, tournamentRepo, scoreRepo, seasonRepo)
	dashboardService := services.NewDashboardService(memberRepo, courseRepo, tournamentRepo, scoreRepo)
	inviteService := services.NewInviteService(inviteRepo, memberRepo, inviteMailer, logger)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	courseHandler := handlers.NewCourseHandler(courseService)
	seasonHandler := handlers.NewSeasonHandler(seasonService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, tournamentService)

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		memberHandler,
		courseHandler,
		seasonHandler,
		tournamentHandler,
		scoreHandler,
		standingsHandler,
		dashboardHandler,
		inviteHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
