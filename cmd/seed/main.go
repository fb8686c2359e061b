// Command main loads demo or random data into the microblog database.
package main

import (
	"context"
	"flag"
	"log"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/seed"
)

func main() {
	demo := flag.Bool("demo", true, "Load the built-in demo fixture")
	random := flag.Bool("random", false, "Generate random users, tweets, follows and likes")
	clean := flag.Bool("clean", false, "Delete all rows before seeding")
	users := flag.Int("users", seed.DefaultRandomOptions.Users, "Random users to create")
	tweets := flag.Int("tweets", seed.DefaultRandomOptions.TweetsPerUser, "Tweets per random user")
	follows := flag.Int("follows", seed.DefaultRandomOptions.FollowsPerUser, "Follow attempts per random user")
	likes := flag.Int("likes", seed.DefaultRandomOptions.LikesPerUser, "Like attempts per random user")
	rngSeed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()

	if *clean {
		if err := seed.Clear(ctx, db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *demo {
		if err := seed.Demo(ctx, db, cfg.MediaRoot); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		log.Println("Demo data loaded (api keys: test, test2, test3)")
	}

	if *random {
		opts := seed.RandomOptions{
			Users:          *users,
			TweetsPerUser:  *tweets,
			FollowsPerUser: *follows,
			LikesPerUser:   *likes,
			MaxDays:        seed.DefaultRandomOptions.MaxDays,
			Seed:           *rngSeed,
		}
		sum, err := seed.Random(ctx, db, opts)
		if err != nil {
			log.Fatalf("Random seeding failed: %v", err)
		}
		log.Printf("Created %d users and %d tweets", len(sum.Users), sum.Tweets)
	}
}
