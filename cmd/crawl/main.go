package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/arbor/internal/crawler"
)

func run(ctx context.Context, cmd *cli.Command) error {
	vaultPath := "."
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("expected at most one vault path, got %d arguments", cmd.Args().Len())
	}
	if cmd.Args().Present() {
		vaultPath = cmd.Args().First()
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	sum, err := crawler.Run(ctx, vaultPath, crawler.Options{
		SQLitePath: os.Getenv("ARBOR_SQLITE_PATH"),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	logger.Info("Done", slog.String("vault", sum.Vault), slog.Int("notes", sum.Records))
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "crawl",
		Usage:     "Extract note metadata from a markdown vault into vault_notes.csv and reference_tree.md",
		ArgsUsage: "[vault-path]",
		Action:    run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("crawl error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
