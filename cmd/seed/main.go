// Command seed fills the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"recshelf/internal/config"
	"recshelf/internal/database"
	"recshelf/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.NumUsers, "Number of users to create")
	numTags := flag.Int("tags", defaults.NumTags, "Number of tags to create")
	numRecs := flag.Int("recommendations", defaults.NumRecommendations, "Number of recommendations to create")
	maxComments := flag.Int("max-comments", defaults.MaxComments, "Maximum comments per recommendation")
	shouldClean := flag.Bool("clean", defaults.ShouldClean, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Skip bcrypt; seeded users cannot log in")
	randSeed := flag.Int64("seed", 0, "Random seed, 0 for a random run")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sum, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:           *numUsers,
		NumTags:            *numTags,
		NumRecommendations: *numRecs,
		MaxComments:        *maxComments,
		ShouldClean:        *shouldClean,
		SkipBcrypt:         *fast,
		RandSeed:           *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d tags, %d recommendations, %d comments, %d reactions",
		sum.Users, sum.Tags, sum.Recommendations, sum.Comments, sum.Reactions)
	if !*fast {
		log.Printf("All seeded users have the password: %s", seed.DemoPassword)
	}
}
