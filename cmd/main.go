package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	httpapi "github.com/dmarkhas/planning-poker/internal/api/http"
	"github.com/dmarkhas/planning-poker/internal/config"
	"github.com/dmarkhas/planning-poker/internal/repository"
	"github.com/dmarkhas/planning-poker/internal/service"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	sessionRepo := repository.NewInMemorySessionRepository()
	userRepo := repository.NewInMemoryUserRepository()

	roomService := service.NewRoomService(sessionRepo, cfg.Poker.Deck, log)
	userService := service.NewUserService(userRepo, log)

	roomController := httpapi.NewRoomController(roomService)
	userController := httpapi.NewUserController(userService)

	router := httpapi.SetupRouter(httpapi.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SessionSecret:  cfg.Session.Secret,
		SessionName:    cfg.Session.Name,
	}, roomController, userController, userService)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
