package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dungeon-generator/internal/config"
	"github.com/KirkDiggler/dungeon-generator/internal/repositories/tablesources"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	dir := flag.String("dir", "", "Directory of tab_<id>.csv files (defaults to tables.dir)")
	workers := flag.Int("workers", 4, "Tables copied in parallel")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dir == "" {
		*dir = cfg.Tables.Dir
	}
	if cfg.Redis.URL == "" {
		log.Fatal("REDIS_URL is required to seed tables")
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	seeded, err := seed(ctx, tablesources.NewFilesystem(*dir), tablesources.NewRedis(client), *workers)
	if err != nil {
		log.Fatalf("Failed to seed tables: %v", err)
	}

	fmt.Printf("Seeded %d tables from %s\n", seeded, *dir)
}

// seed validates every table in from and copies it into to
func seed(ctx context.Context, from, to tablesources.Repository, workers int) (int, error) {
	ids, err := from.List(ctx)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for _, id := range ids {
		id := id
		g.Go(func() error {
			return copyTable(ctx, from, to, id)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func copyTable(ctx context.Context, from, to tablesources.Repository, id int) error {
	rc, err := from.Open(ctx, id)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read table %d: %w", id, err)
	}

	// refuse to seed tables that would not load
	if _, err := tables.Parse(id, bytes.NewReader(data)); err != nil {
		return err
	}

	return to.Put(ctx, id, data)
}
