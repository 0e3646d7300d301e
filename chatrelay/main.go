package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatrelay/chatrelay/config"
	"chatrelay/chatrelay/controllers"
	"chatrelay/chatrelay/middlewares"
	"chatrelay/chatrelay/realtime"
	"chatrelay/chatrelay/routes"
	"chatrelay/chatrelay/services/ai"
	"chatrelay/chatrelay/sources/psql"
	"chatrelay/chatrelay/sources/psql/dao"
	"chatrelay/chatrelay/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()

	if err := godotenv.Load(); err != nil {
		logging.AppLogger.Warn("no .env file found, using system environment variables")
	}
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	roomDAO := dao.NewRoomDAO(db.DB)
	messageDAO := dao.NewMessageDAO(db.Pool)

	hub := realtime.NewHub(logging.AppLogger)

	generator := ai.NewGeminiClient(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		time.Duration(cfg.AITimeoutSeconds)*time.Second,
	)
	pipeline := ai.NewPipeline(userDAO, messageDAO, generator, cfg.AIHistoryWindow, logging.AppLogger)

	authCtrl := controllers.NewAuthController(userDAO)
	roomCtrl := controllers.NewRoomController(roomDAO)
	msgCtrl := controllers.NewMessageController(messageDAO)
	relayCtrl := controllers.NewRelayController(messageDAO, hub, pipeline, logging.AppLogger, logging.ErrorLogger)
	healthCtrl := controllers.NewHealthController()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLog(logging.RequestLogger))
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CORS)

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/login", routes.AuthRoutes(authCtrl))
	r.Mount("/rooms", routes.RoomRoutes(roomCtrl, msgCtrl))
	r.Mount("/ws", routes.WSRoutes(hub, relayCtrl))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
