package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/hetulpatel/OddsEdge/internal/storage/sqlite"
)

func main() {
	godotenv.Load()

	store, err := sqlite.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateTables(ctx); err != nil {
		log.Fatalf("create tables: %v", err)
	}
	log.Printf("SQLite edge/movement schema ready at %s", store.Path())
}
