package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harsham1998/dashboard-api/internal/interfaces/scheduler"
	"github.com/harsham1998/dashboard-api/internal/shared/config"
	"github.com/harsham1998/dashboard-api/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  os.Getenv("ENVIRONMENT"),
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Printf("Telemetry shutdown error: %v", err)
			}
		}()
	}

	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	var sched *scheduler.Scheduler
	if cfg.Retention.Enabled {
		sched, err = scheduler.New(scheduler.Config{
			ScheduleTimes: cfg.Retention.ScheduleTimes,
			WorkerCount:   cfg.Retention.WorkerCount,
			JobDelay:      cfg.Retention.JobDelay,
			QueueSize:     cfg.Retention.QueueSize,
			RunOnStartup:  cfg.Retention.RunOnStartup,
			JobProvider: func(context.Context) ([]scheduler.Job, error) {
				return []scheduler.Job{
					scheduler.NewRetentionJob(deps.TransactionRepo, cfg.Retention.KeepTransactions),
				}, nil
			},
		})
		if err != nil {
			return err
		}
		sched.Start()
	} else {
		log.Println("Retention scheduler is disabled")
	}

	handler := SetupRoutes(deps, cfg)
	srv, redirectSrv := StartServers(NewServerConfigFromConfig(handler, cfg))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, redirectSrv, sched, 30*time.Second)
	return nil
}
