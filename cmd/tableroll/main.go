package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-generator/internal/config"
	"github.com/KirkDiggler/dungeon-generator/internal/dice"
	"github.com/KirkDiggler/dungeon-generator/internal/entities"
	"github.com/KirkDiggler/dungeon-generator/internal/logger"
	"github.com/KirkDiggler/dungeon-generator/internal/repositories/rolls"
	"github.com/KirkDiggler/dungeon-generator/internal/repositories/tablesources"
	"github.com/KirkDiggler/dungeon-generator/internal/services/tableroll"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	tableFlag := flag.String("table", "", "Table number to roll on")
	rollFlag := flag.String("roll", "", "Roll to resolve instead of rolling dice")
	seed := flag.Int64("seed", 0, "Seed for repeatable dice (0 uses the clock)")
	historyLimit := flag.Int("history", 0, "Show the last N recorded rolls on the table")
	list := flag.Bool("list", false, "List available tables")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logs, closer, err := logger.New(cfg.Logging, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		logs.Debug("connected to Redis")
	}

	var source tablesources.Repository
	switch cfg.Tables.Source {
	case config.SourceRedis:
		source = tablesources.NewRedis(redisClient)
	default:
		source = tablesources.NewFilesystem(cfg.Tables.Dir)
	}

	if *list {
		ids, err := source.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list tables: %v", err)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return
	}

	if *tableFlag == "" {
		log.Fatal("Please provide a table number with -table")
	}
	tableID, err := tables.ParseNumber(*tableFlag)
	if err != nil {
		log.Fatalf("Invalid table number: %v", err)
	}

	svcCfg := &tableroll.ServiceConfig{
		Source: source,
		Dice:   cfg.Tables.Dice,
		Logger: logs,
		Cache:  cfg.Tables.Cache,
	}
	if *seed != 0 {
		svcCfg.Roller = dice.NewSeededRoller(*seed)
	}
	if redisClient != nil {
		svcCfg.History = rolls.NewRedis(redisClient, rolls.RealTimeProvider{})
	}

	svc, err := tableroll.NewService(svcCfg)
	if err != nil {
		log.Fatalf("Failed to create table service: %v", err)
	}

	if *rollFlag != "" {
		roll, err := tables.ParseNumber(*rollFlag)
		if err != nil {
			log.Fatalf("Invalid roll: %v", err)
		}

		table, err := svc.LoadTable(ctx, tableID)
		if err != nil {
			log.Fatalf("Failed to load table: %v", err)
		}
		result, err := svc.RollOn(ctx, table, roll)
		if err != nil {
			log.Fatalf("Failed to roll on table: %v", err)
		}
		printResult(os.Stdout, result, nil)
	} else {
		outcome, err := svc.Roll(ctx, tableID)
		if err != nil {
			log.Fatalf("Failed to roll on table: %v", err)
		}
		printResult(os.Stdout, outcome.Result, outcome.Dice)
	}

	if *historyLimit > 0 {
		history, err := svc.History(ctx, tableID, *historyLimit)
		if err != nil {
			log.Fatalf("Failed to load roll history: %v", err)
		}
		printHistory(os.Stdout, history)
	}
}

func printResult(w io.Writer, result *tables.Result, rolled *dice.RollResult) {
	fmt.Fprintf(w, "=== Table %d ===\n", result.TableID())
	if rolled != nil {
		fmt.Fprintf(w, "Dice: %s\n", rolled)
	}
	for _, column := range result.Columns() {
		value, _ := result.Value(column)
		fmt.Fprintf(w, "%s: %s\n", column, value)
	}
}

func printHistory(w io.Writer, history []*entities.TableRoll) {
	fmt.Fprintf(w, "\n=== Last %d rolls ===\n", len(history))
	for _, roll := range history {
		parts := make([]string, 0, len(roll.Columns))
		for _, column := range roll.Columns {
			parts = append(parts, fmt.Sprintf("%s=%s", column, roll.Value(column)))
		}
		fmt.Fprintf(w, "%s  %s  %s\n", roll.CreatedAt.Format(time.RFC3339), roll.ID, strings.Join(parts, ", "))
	}
}
