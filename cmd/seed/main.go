package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sahilchouksey/task-tracker/app"
	"github.com/sahilchouksey/task-tracker/config"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/utils"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to load .env:", err)
	}

	env, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := utils.NewLogger(env.LOG_LEVEL, env.LOG_FORMAT)

	store, err := app.SetupStorage(env, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}
	defer store.Close()

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Task Tracker - Demo Data Seeding")
	fmt.Println(separator)

	seeder := database.NewSeeder(store, log)
	if err := seeder.SeedAll(os.Getenv("SEED_USERNAME"), os.Getenv("SEED_PASSWORD")); err != nil {
		store.Close()
		log.WithError(err).Fatal("Seeding failed")
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed successfully!")
	fmt.Println("The demo user comes from SEED_USERNAME and SEED_PASSWORD; if unset, it is skipped.")
	fmt.Println(separator)
}
