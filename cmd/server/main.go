package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/chpancrate/litreview/config"
	_ "github.com/chpancrate/litreview/docs"
	"github.com/chpancrate/litreview/internal/api/handler"
	"github.com/chpancrate/litreview/internal/api/router"
	"github.com/chpancrate/litreview/internal/repository"
	"github.com/chpancrate/litreview/internal/service"
	"github.com/chpancrate/litreview/pkg/cache"
	"github.com/chpancrate/litreview/pkg/database"
	"github.com/chpancrate/litreview/pkg/logger"
	"github.com/chpancrate/litreview/pkg/tracing"
)

// @title LITReview API
// @version 1.0
// @description 社交书评：Ticket / Review / 关注关系与个人信息流
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}
	if cfg.Trace.Enabled {
		shutdown, err := tracing.Init(ctx, cfg)
		if err != nil {
			logger.Fatal("tracing init failed", zap.Error(err))
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	rdb, err := cache.InitRedis(cfg)
	if err != nil {
		logger.Fatal("redis init failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	followRepo := repository.NewFollowRepository(db)

	denylist := service.NewTokenDenylist(rdb)
	authService := service.NewAuthService(userRepo, denylist, cfg.JWT)
	ticketService := service.NewTicketService(ticketRepo)
	reviewService := service.NewReviewService(db, reviewRepo, ticketRepo)
	relService := service.NewRelationshipService(followRepo, userRepo)
	feedService := service.NewFeedService(ticketRepo, reviewRepo, followRepo, cfg.Feed.PageSize, cfg.Feed.HomeSize)

	h := handler.New(authService, ticketService, reviewService, relService, feedService)
	r := router.New(cfg, h, denylist)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
