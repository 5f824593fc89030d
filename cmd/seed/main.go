// Command main runs the database seeder for Sphere.
package main

import (
	"flag"
	"log"

	"sphere/internal/config"
	"sphere/internal/database"
	"sphere/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numArticles := flag.Int("articles", 200, "Number of articles to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	profilePath := flag.String("profile", "", "YAML seeding profile (overrides other flags)")
	flag.Parse()

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumArticles: *numArticles,
		ShouldClean: *shouldClean,
	}
	if *profilePath != "" {
		profile, err := seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
		opts = profile.Options()
	}

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d articles, clean=%v\n", opts.NumUsers, opts.NumArticles, opts.ShouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
