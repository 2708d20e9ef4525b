package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"card_market/internal/application"
	"card_market/internal/domain/value"
	"card_market/pkg/logx"
	"card_market/pkg/lox"
)

// Scores the given apps into one table and exits.
//
//	go run ./cmd/scoreGames -table instant_prices 440 570
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tableName := flag.String("table", value.TableGames.String(), "games or instant_prices")
	flag.Parse()

	if err := run(ctx, *tableName, flag.Args()); err != nil {
		slog.Error("scoring failed", logx.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}

func run(ctx context.Context, tableName string, args []string) error {
	table, err := value.ParseTable(tableName)
	if err != nil {
		return fmt.Errorf("value.ParseTable: %w", err)
	}

	appIDs, err := lox.MapErr(args, value.ParseAppID)
	if err != nil {
		return fmt.Errorf("value.ParseAppID: %w", err)
	}

	if len(appIDs) == 0 {
		return errors.New("no app ids given")
	}

	ctx, cfg, err := application.Init(ctx)
	if err != nil {
		return err
	}

	database, repo, err := application.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	syncer, err := application.NewSyncer(cfg.Scoring, application.NewSteamClient(ctx, cfg.Steam, nil), repo)
	if err != nil {
		return err
	}

	result, err := syncer.UpdateDatabase(ctx, appIDs, table)
	if err != nil {
		return fmt.Errorf("syncer.UpdateDatabase: %w", err)
	}

	slog.Info(
		"scoring finished",
		slog.String(logx.FieldTable, table.String()),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
	)

	return nil
}
