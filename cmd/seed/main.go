package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"irportal/internal/config"
	"irportal/internal/repository"
	"irportal/internal/seed"
	"irportal/internal/service"
)

func main() {
	// Parse command-line flags
	file := flag.String("file", "", "Seed YAML file (defaults to the embedded reference data)")
	dryRun := flag.Bool("dry-run", false, "Parse the seed file and print counts without writing")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	data, err := loadSeed(*file)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	logger.Info("seed loaded",
		"board_directors", len(data.BoardDirectors),
		"promoters", len(data.Promoters),
		"policies", len(data.Policies),
		"announcements", len(data.Announcements),
	)
	if *dryRun {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	gw := service.NewGateway(store, logger)
	res, err := seed.Apply(ctx, gw, store.Tx, data, logger)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete (backend: %s, created: %d, skipped: %d)", store.Backend, res.Created, res.Skipped)
}

func loadSeed(path string) (*seed.Data, error) {
	if path == "" {
		return seed.LoadDefault()
	}
	return seed.LoadFile(path)
}
