// Command main runs the database seeder for PlaceShare.
package main

import (
	"flag"
	"log"

	"placeshare/internal/config"
	"placeshare/internal/database"
	"placeshare/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	placesPerUser := flag.Int("places", 4, "Maximum number of places per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, up to %d places each, clean=%v\n", *numUsers, *placesPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	if _, err := s.SeedPlaces(users, *placesPerUser); err != nil {
		log.Fatalf("Place seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
