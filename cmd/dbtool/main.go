package main

import (
	"context"
	"flag"
	"log"
	"mediroute-service/internal/adapters/cache"
	"mediroute-service/internal/config"
	"mediroute-service/internal/platform/db"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres place cache: it creates the schema and can
// prune expired entries.
func main() {
	prune := flag.Bool("prune", false, "delete cache entries older than CACHE_TTL")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Initializing place cache schema...")
	if err := cache.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if !*prune {
		return
	}

	ttl, err := config.GetDuration("CACHE_TTL", 24*time.Hour)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("Pruning entries older than %s...", ttl)
	n, err := cache.NewSQLPlaceCache(conn, ttl).Prune(ctx)
	if err != nil {
		log.Fatalf("prune failed: %v", err)
	}
	log.Printf("Pruned %d entries.", n)
}
