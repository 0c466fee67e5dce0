package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Abhinavsharma005/EduStream-2/internal/auth"
	"github.com/Abhinavsharma005/EduStream-2/internal/config"
	"github.com/Abhinavsharma005/EduStream-2/internal/database/db_client"
	"github.com/Abhinavsharma005/EduStream-2/internal/http/http_server"
	"github.com/Abhinavsharma005/EduStream-2/internal/media"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/liveroom"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/session"
	"github.com/Abhinavsharma005/EduStream-2/internal/services/user"
	"github.com/Abhinavsharma005/EduStream-2/internal/syncpresence"
	"github.com/Abhinavsharma005/EduStream-2/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	Log.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Postgres db client
	pgDb, err := db_client.Open(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb)
	if err != nil {
		Log.Fatal("pg-open", zap.Error(err))
	}
	defer pgDb.Close()
	if err := db_client.RunMigrations(ctx, pgDb); err != nil {
		Log.Fatal("pg-migrate", zap.Error(err))
	}

	// 4. Services: users, sessions, and the in-memory room coordination state
	jwt := auth.New(cfg.JwtSecret)
	userService := user.NewUserService(pgDb)
	sessionService := session.NewSessionService(pgDb)
	mediaIssuer := media.NewTokenIssuer(cfg.LivekitApiKey, cfg.LivekitApiSecret, cfg.LivekitUrl)
	roomState := liveroom.NewState()

	// 5. Background: mirror live attendance into Postgres
	syncpresence.Run(ctx, roomState.Membership, sessionService)

	// 6. WebSockets hub + room event router
	hub := ws.NewHub()
	wsSrv := ws.NewWsServer(hub, roomState)

	// 7. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, cfg.CorsAllowUrl,
		wsSrv, jwt, userService, sessionService, mediaIssuer)
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
