// Package seed populates the board with demo data for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"bulletin/internal/board"
	"bulletin/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Options configuration for the seeder
type Options struct {
	NumAccounts     int
	NumPosts        int
	MaxCommentsPer  int
	MaxLikesPer     int
	LockedFraction  float64
	RemovedFraction float64
}

// DefaultOptions returns a small but lively board.
func DefaultOptions() Options {
	return Options{
		NumAccounts:     12,
		NumPosts:        40,
		MaxCommentsPer:  5,
		MaxLikesPer:     6,
		LockedFraction:  0.1,
		RemovedFraction: 0.05,
	}
}

var tagPool = []string{
	"go", "rust", "web3", "news", "meta", "help", "showcase", "discussion",
	"tooling", "infra", "design", "random",
}

// Seeder drives the board operations with generated accounts and content.
type Seeder struct {
	board *board.Board
	rng   *rand.Rand
}

// NewSeeder creates a Seeder bound to the given board.
func NewSeeder(b *board.Board) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{
		board: b,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// accountName produces a NEAR-style account ID.
func (s *Seeder) accountName() models.AccountID {
	name := strings.ToLower(gofakeit.Username())
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, name)
	if name == "" {
		name = fmt.Sprintf("user%d", s.rng.Intn(100000))
	}
	return models.AccountID(name + ".near")
}

func (s *Seeder) pickTags() []string {
	n := s.rng.Intn(4)
	if n == 0 {
		return nil
	}
	tags := make([]string, 0, n)
	seen := map[string]bool{}
	for len(tags) < n {
		tag := tagPool[s.rng.Intn(len(tagPool))]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// Run seeds the board with accounts, posts, comments, likes and a sprinkling
// of locked and removed posts.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	log.Printf("Seeding board with %d posts across %d accounts...", opts.NumPosts, opts.NumAccounts)

	accounts := make([]models.AccountID, opts.NumAccounts)
	for i := range accounts {
		accounts[i] = s.accountName()
	}
	pick := func() models.AccountID {
		return accounts[s.rng.Intn(len(accounts))]
	}

	for i := 0; i < opts.NumPosts; i++ {
		creator := pick()
		post, err := s.board.AddPost(ctx, creator,
			gofakeit.Sentence(5),
			gofakeit.Paragraph(1, 3, 8, "\n"),
			s.pickTags(),
		)
		if err != nil {
			return fmt.Errorf("seeding post %d: %w", i, err)
		}

		for c := s.rng.Intn(opts.MaxCommentsPer + 1); c > 0; c-- {
			updated, err := s.board.AddComment(ctx, pick(), post.ID, nil, gofakeit.Sentence(8))
			if err != nil {
				return fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
			}
			// Occasionally reply to the newest comment.
			if s.rng.Float64() < 0.4 && len(updated.Comments) > 0 {
				idx := len(updated.Comments) - 1
				if _, err := s.board.AddComment(ctx, pick(), post.ID, &idx, gofakeit.Sentence(6)); err != nil {
					return fmt.Errorf("seeding reply on post %d: %w", post.ID, err)
				}
			}
		}

		for l := s.rng.Intn(opts.MaxLikesPer + 1); l > 0; l-- {
			if _, err := s.board.LikePost(ctx, pick(), post.ID); err != nil {
				return fmt.Errorf("seeding like on post %d: %w", post.ID, err)
			}
		}

		// Lifecycle sprinkle: lock or remove a fraction of posts.
		roll := s.rng.Float64()
		switch {
		case roll < opts.RemovedFraction:
			if _, err := s.board.EditPost(ctx, creator, post.ID, nil, nil, nil, "Removed"); err != nil {
				return fmt.Errorf("removing post %d: %w", post.ID, err)
			}
		case roll < opts.RemovedFraction+opts.LockedFraction:
			if _, err := s.board.EditPost(ctx, creator, post.ID, nil, nil, nil, "Locked"); err != nil {
				return fmt.Errorf("locking post %d: %w", post.ID, err)
			}
		}
	}

	log.Printf("Seeding complete")
	return nil
}
