// Command main runs the board seeder.
package main

import (
	"context"
	"flag"
	"log"

	"bulletin/internal/board"
	"bulletin/internal/config"
	"bulletin/internal/database"
	"bulletin/internal/seed"
	"bulletin/internal/store"
)

func main() {
	// Parse command line flags
	numAccounts := flag.Int("accounts", 12, "Number of accounts to post as")
	numPosts := flag.Int("posts", 40, "Number of posts to create")
	maxComments := flag.Int("comments", 5, "Max comments per post")
	maxLikes := flag.Int("likes", 6, "Max likes per post")
	flag.Parse()

	log.Println("Board Seeder")
	log.Printf("Target: %d posts across %d accounts\n", *numPosts, *numAccounts)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the store
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var kv store.KV
	if db != nil {
		kv = store.NewGorm(db)
	} else {
		log.Println("Warning: memory backend selected, seeded data will not persist")
		kv = store.NewMemory()
	}

	opts := seed.DefaultOptions()
	opts.NumAccounts = *numAccounts
	opts.NumPosts = *numPosts
	opts.MaxCommentsPer = *maxComments
	opts.MaxLikesPer = *maxLikes

	s := seed.NewSeeder(board.New(kv))
	if err := s.Run(context.Background(), opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
