package main

import (
	"context"
	"log"
	"pos_backend/pkg/config"
	"pos_backend/pkg/database"
	"pos_backend/pkg/store"
	"time"
)

// Seeds an empty database with the default menu, floor plan and staff
// accounts. Collections that already hold records are left untouched.
func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDatabase()

	if err := database.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	writer := store.NewWriter(store.WriterConfig{
		Workers:     1,
		MaxAttempts: config.AppConfig.WriteMaxAttempts,
		Backoff:     config.WriteBackoff(),
	})
	state := store.New(store.Options{
		Store:    database.NewRepository(database.DB),
		Writer:   writer,
		Location: config.Location(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Load writes the default dataset for every empty collection before returning.
	if err := state.Load(ctx); err != nil {
		log.Fatal("Failed to seed database:", err)
	}
	if err := writer.Close(ctx); err != nil {
		log.Printf("⚠️  Write queue did not drain: %v", err)
	}

	log.Printf("✅ Seed complete: %d menu items, %d tables, %d staff accounts",
		len(state.Menu()), len(state.Tables()), len(state.StaffMembers()))
	for _, member := range state.StaffMembers() {
		log.Printf("   %s (%s) %s", member.ID, member.Role, member.Name)
	}
}
