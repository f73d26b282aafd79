package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/dbmigrate"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (default: embedded)")
	requireDirect := flag.Bool("require-direct", false, "only accept DATABASE_URL_DIRECT")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: go run ./cmd/migrate [-dir path] [up|status|down]")
	}

	command := flag.Arg(0)
	switch command {
	case "up", "status", "down":
	default:
		log.Fatalf("unsupported command %q (allowed: up, status, down)", command)
	}

	cfg := config.Load()
	target, err := dbmigrate.SelectTarget(cfg, command, *requireDirect)
	if err != nil {
		log.Fatal(err)
	}

	if target.Warning != "" {
		log.Printf("WARN migrate: %s", target.Warning)
	}
	log.Printf("migrate: command=%s using=%s", command, target.Source)

	if err := dbmigrate.Run(context.Background(), command, target.URL, *dir); err != nil {
		log.Fatal(err)
	}

	log.Printf("migrate: %s completed successfully", command)
}
