// Command migrate runs schema operations for the backend.
package main

import (
	"fmt"
	"log"

	"highpass/internal/config"
	"highpass/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("automigration failed: %w", err)
	}

	log.Println("automigrations applied")
	return nil
}
