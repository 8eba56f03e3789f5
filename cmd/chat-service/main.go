package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nycles/chat-service/config"
	"github.com/Nycles/chat-service/internal/objstore"
	"github.com/Nycles/chat-service/internal/pg"
	pgrepo "github.com/Nycles/chat-service/internal/repository/postgres"
	"github.com/Nycles/chat-service/internal/security"
	"github.com/Nycles/chat-service/internal/service"
	httpx "github.com/Nycles/chat-service/internal/transport/http"
	"github.com/Nycles/chat-service/internal/transport/ws"
	"github.com/Nycles/chat-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chat-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Postgres.ToPGConfig())
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- object storage ---
	files, err := objstore.New(objstore.Config{
		Endpoint:      cfg.S3.Endpoint,
		Region:        cfg.S3.Region,
		AccessKey:     cfg.S3.AccessKey,
		SecretKey:     cfg.S3.SecretKey,
		Bucket:        cfg.S3.Bucket,
		UseSSL:        cfg.S3.UseSSL,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("objstore: %v", err)
	}

	// --- repos ---
	userRepo := pgrepo.NewUserRepoFromPool(pool)
	chatRepo := pgrepo.NewChatRepo(pool)

	// --- security ---
	signer := security.NewJWTSigner(
		[]byte(cfg.Security.JWT.Secret),
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.AccessTTL,
		cfg.Security.JWT.ClockSkew,
	)

	// --- services ---
	userSvc := service.NewUserService(userRepo, files, signer, security.BcryptConfig{
		Cost:      cfg.Security.Password.BcryptCost,
		MinLength: cfg.Security.Password.MinLength,
	}, nil)
	chatSvc := service.NewChatService(chatRepo)

	// --- WS registry & server ---
	registry := ws.NewRegistry()
	wsServer := ws.NewServer(registry, chatSvc, signer)

	// --- HTTP ---
	handler := httpx.NewHandler(userSvc, chatSvc, httpx.HandlerConfig{
		MaxUploadBytes:   cfg.Uploads.MaxSizeBytes,
		AllowedImageMime: cfg.Uploads.AllowedMime,
	})
	router := httpx.NewRouter(handler, signer, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- run ---
	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
