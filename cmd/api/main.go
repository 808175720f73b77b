package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/config"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/bootstrap"
	cronjob "github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/cron"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/ingest"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/repository"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/service"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const serviceName = "indoor-nav-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		waypoints service.WaypointSource
		pool      *pgxpool.Pool
	)
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		waypoints = repository.NewWaypointRepository(db)

		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.URL(&cfg.Database)})
		if err != nil {
			log.Printf("[warn] operation=startup health pool unavailable: %v", err)
		} else {
			defer pool.Close()
		}
	} else {
		wps, err := ingest.DemoBuilding()
		if err != nil {
			log.Fatalf("demo building: %v", err)
		}
		src := ingest.NewStaticSource()
		src.Put(ingest.DemoBuildingID, wps)
		waypoints = src
		log.Printf("[info] operation=startup waypoints=demo building=%s count=%d", ingest.DemoBuildingID, len(wps))
	}

	var (
		rdb       *redis.Client
		closures  *service.ClosureService
		snapshots service.ClosureSnapshotter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()

		closures = service.NewClosureService(repository.NewClosureRepository(rdb))
		snapshots = service.ClosureSnapshots(closures)

		sched := cronjob.NewScheduler(closures)
		if err := sched.Start(cfg.Routing.SweepSpec); err != nil {
			log.Fatalf("cron: %v", err)
		}
		defer sched.Stop()
	} else {
		log.Printf("[warn] operation=startup REDIS_ADDR not set, closures disabled")
	}

	nav, err := service.NewNavigationService(waypoints, snapshots, cfg.Routing.Graph, cfg.Routing.WalkingSpeed)
	if err != nil {
		log.Fatalf("navigation: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		DB:             pool,
		Redis:          rdb,
		Navigation:     nav,
		Closures:       closures,
		RouteRateLimit: cfg.Server.RouteRateLimit,
		RouteRateBurst: cfg.Server.RouteRateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] operation=shutdown error=%v", err)
	}
}
