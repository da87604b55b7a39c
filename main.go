package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qrmenu/configs"
	"qrmenu/jobs"
	"qrmenu/pkg/cache"
	"qrmenu/routes"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}
	log := configs.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := configs.ConnectionDB(cfg.DBDriver, cfg.DBSource, nil)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("❌ migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.Fatalf("❌ seed admin failed: %v", err)
	}

	plans, err := configs.LoadPlans()
	if err != nil {
		log.Fatalf("❌ load plans failed: %v", err)
	}

	// cache: redis ถ้าตั้ง REDIS_ADDR ไว้ ไม่งั้นใช้ memory
	var store cache.Store = cache.NewMemory()
	if cfg.RedisAddr != "" {
		client, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.WithError(err).Warn("⚠️ redis unavailable, falling back to in-memory cache")
		} else {
			defer client.Close()
			store = cache.NewRedis(client, "qrmenu:")
			log.WithField("addr", cfg.RedisAddr).Info("✅ redis cache connected")
		}
	}

	srv := routes.NewServer(routes.Deps{DB: db, Config: cfg, Plans: plans, Store: store, Log: log})
	go srv.Hub.Run(ctx)

	// cron jobs
	sched := jobs.NewScheduler(log)
	if err := sched.AddExpiry(cfg.ExpirySchedule, srv.Subscriptions); err != nil {
		log.Fatalf("❌ invalid EXPIRY_SCHEDULE %q: %v", cfg.ExpirySchedule, err)
	}
	if err := sched.AddCleanup("@every 10m", 30*time.Minute, srv.FeedbackLimiter); err != nil {
		log.Fatalf("❌ schedule cleanup failed: %v", err)
	}
	jobs.RunExpiry(srv.Subscriptions, log)
	sched.Start()
	defer sched.Stop()

	// HTTP
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("🚀 Server running at %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
