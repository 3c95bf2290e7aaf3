// Command seed runs the database seeder for the portfolio backend.
package main

import (
	"flag"
	"log"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/seed"
)

func main() {
	numBlogs := flag.Int("blogs", 20, "Number of blog posts to create")
	numProjects := flag.Int("projects", 8, "Number of projects to create")
	numContacts := flag.Int("contacts", 15, "Number of contact messages to create")
	shouldClean := flag.Bool("clean", true, "Clean existing content before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d blogs, %d projects, %d contacts, clean=%v\n",
		*numBlogs, *numProjects, *numContacts, *shouldClean)

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
	if err := s.SeedBlogs(*numBlogs); err != nil {
		log.Fatalf("Blog seeding failed: %v", err)
	}
	if err := s.SeedProjects(*numProjects); err != nil {
		log.Fatalf("Project seeding failed: %v", err)
	}
	if err := s.SeedContacts(*numContacts); err != nil {
		log.Fatalf("Contact seeding failed: %v", err)
	}

	log.Println("All done! The database is now populated with demo content.")
}
