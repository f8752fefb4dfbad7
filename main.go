package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resto/config"
	"resto/database"
	"resto/events"
	"resto/jobs"
	"resto/logger"
	"resto/metrics"
	"resto/pos"
	"resto/route"
	"resto/utils"
)

func main() {
	configPath := flag.String("c", "resto.yml", "config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.ServiceName, cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("Service stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slots, err := database.OpenSlots(cfg.Storage, zlog)
	if err != nil {
		return err
	}
	defer slots.Close()

	bus := events.NewBus(zlog)
	if err := metrics.Attach(bus); err != nil {
		return err
	}
	if cfg.Events.AMQPURL != "" {
		forwarder, err := events.NewForwarder(cfg.Events.AMQPURL, cfg.Events.Exchange, zlog)
		if err != nil {
			zlog.Warn("Change events will not be exported", zap.Error(err))
		} else {
			defer forwarder.Close()
			if err := forwarder.Attach(bus); err != nil {
				return err
			}
		}
	}

	restaurant := pos.New(pos.Options{
		Slots:       slots,
		Persist:     cfg.Storage.Persist,
		ResizeSeats: cfg.Tables.ResizeSeats,
		Tax:         cfg.Cart.Tax,
		Notifier:    bus,
		Logger:      zlog,
	})
	if err := restaurant.Hydrate(ctx); err != nil {
		return err
	}

	scheduler := jobs.NewScheduler(restaurant, bus, zlog)
	if err := scheduler.Schedule(cfg.Jobs.InventorySweep); err != nil {
		return err
	}
	scheduler.SweepInventory()

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		zlog.Info("Running in debug mode")
	}

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(zlog))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	route.POSRoutes(router, route.Deps{
		Restaurant:         restaurant,
		Tokens:             utils.NewTokens(cfg.Auth.JWTSecret),
		DefaultPermissions: cfg.Auth.DefaultPermissions,
		RolePermissions:    cfg.Auth.RolePermissions,
		Logger:             zlog,
	})
	zlog.Info("Routes configured")

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
