package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"handcrafted-haven/internal/config"
	"handcrafted-haven/internal/database"
	"handcrafted-haven/internal/logger"

	"go.uber.org/zap"
)

var command = flag.String("command", "up", "Migration command: up, down or status")

var errUnknownCommand = errors.New("unknown migration command")

func main() {
	flag.Parse()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer zlog.Sync()

	err = run(context.Background(), cfg, zlog, *command)
	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		zlog.Fatal("Migration failed", zap.String("command", *command), zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger, cmd string) error {
	switch cmd {
	case "up", "down", "status":
	default:
		return fmt.Errorf("%w %q", errUnknownCommand, cmd)
	}

	dbService, err := database.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbService.Close()

	db := dbService.DB()

	switch cmd {
	case "down":
		return database.RollbackMigration(db, zlog)
	case "status":
		return database.GetMigrationStatus(db)
	default:
		return database.RunMigrations(db, zlog)
	}
}
