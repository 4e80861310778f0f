package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpctx "github.com/driveassist/auth-server/internal/api/http/context"
	"github.com/driveassist/auth-server/internal/api/http/router"
	"github.com/driveassist/auth-server/internal/config"
	"github.com/driveassist/auth-server/internal/drive"
	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/metrics"
	"github.com/driveassist/auth-server/internal/model"
	"github.com/driveassist/auth-server/internal/provider"
	"github.com/driveassist/auth-server/internal/repository/postgres"
	"github.com/driveassist/auth-server/internal/server"
	"github.com/driveassist/auth-server/internal/service"
	"github.com/driveassist/auth-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	tokenRepo := postgres.NewProviderTokenRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	providerHTTP := &http.Client{Timeout: cfg.Google.Timeout}
	google := provider.NewGoogle(provider.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.Google.RedirectURI,
		AuthURL:      cfg.Google.AuthURL,
		TokenURL:     cfg.Google.TokenURL,
		UserInfoURL:  cfg.Google.UserInfoURL,
	}, providerHTTP)

	providers := provider.NewRegistry()
	providers.Register("google", google)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	authService := service.NewAuth(userRepo, tokenRepo, providers, tokenManager, cfg.JWT.SessionTTL, collector, logger)
	driveClient := drive.NewClient(cfg.Google.DriveURL, providerHTTP)
	driveService := service.NewDrive(tokenRepo, driveClient, "google", logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, driveService, authService, db, ctxMgr, registry, "google", logger)
	httpServer := server.NewHTTPServer(fmt.Sprintf(":%s", cfg.HTTP.Port), r.Register())

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
