package main

import (
	"context"
	"os"

	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/server"
	"github.com/formgate/formgate/internal/tasks"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.Configure(&logging.Config{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		os.Exit(1)
	}

	// Legacy records written before retention was configured carry no TTL;
	// the purge task sweeps those.
	purge := tasks.NewSubmissionPurge(rdb, cfg.SubmissionPrefix, cfg.SubmissionRetention, cfg.PurgeInterval)
	purge.Start(context.Background())

	srv := server.NewServer(cfg, rdb)
	srv.Init()

	logger.Info("Listening on :%s", cfg.Port)
	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
