package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"taktziv/internal/amqp"
	"taktziv/internal/backend"
	"taktziv/internal/cli"
	"taktziv/internal/log"
	"taktziv/internal/services"
	"taktziv/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	structured := log.NewStructuredLogger(logger)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting taktziv-worker")

	repo := cli.InitStorage(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick the backup target: spreadsheet, local file, or in-memory.
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Failed to derive backup target", "error", err)
		os.Exit(1)
	}
	target, err := backend.NewFactory(cfg, logger).CreateTarget(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backup target", "error", err, "type", backendCfg.Type)
		os.Exit(1)
	}
	if target.Cleanup != nil {
		defer target.Cleanup()
	}

	processorCfg := services.DefaultBackupProcessorConfig()
	processorCfg.PollInterval = cfg.SyncInterval
	processorCfg.BatchSize = cfg.SyncBatchSize
	processor := services.NewBackupProcessor(repo, target.Appender, processorCfg)
	syncWorker := worker.NewSyncWorker(processor)

	// Recover snapshots left pending from before this worker started.
	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		structured.LogError(ctx, "Startup sync check failed", err,
			log.ComponentWorker, log.OpStartup, log.NewFields())
		// Keep running; the poll loop retries pending rows.
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, relying on the poll loop only", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	// Poll loop: the safety net for snapshots whose queue message was lost.
	g.Go(func() error {
		if err := processor.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return processor.Stop(shutdownCtx)
	})

	// Queue consumer: push-based export as snapshots are created.
	if amqpClient != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeSnapshotSyncWithRetry(gctx, func(msg *amqp.SnapshotSyncMessage) error {
				return syncWorker.HandleSyncMessage(gctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP disabled, exports run on the poll interval", "interval", cfg.SyncInterval)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		structured.LogError(context.Background(), "Worker stopped with error", err,
			log.ComponentAMQP, log.OpSync, log.NewFields())
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
