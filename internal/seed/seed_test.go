package seed

import (
	"context"
	"testing"

	"bulletin/internal/board"
	"bulletin/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeederRun(t *testing.T) {
	b := board.New(store.NewMemory())
	s := NewSeeder(b)

	opts := Options{
		NumAccounts:     5,
		NumPosts:        20,
		MaxCommentsPer:  3,
		MaxLikesPer:     4,
		LockedFraction:  0.2,
		RemovedFraction: 0.1,
	}
	require.NoError(t, s.Run(context.Background(), opts))

	posts, err := b.GetAllPosts(context.Background())
	require.NoError(t, err)

	// Removed posts are hidden, so the listing holds at most NumPosts.
	assert.NotEmpty(t, posts)
	assert.LessOrEqual(t, len(posts), opts.NumPosts)

	for _, p := range posts {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Content)
		assert.NotEmpty(t, p.Creator)
	}
}

func TestAccountNameShape(t *testing.T) {
	b := board.New(store.NewMemory())
	s := NewSeeder(b)

	for i := 0; i < 50; i++ {
		name := string(s.accountName())
		assert.Regexp(t, `^[a-z0-9]+\.near$`, name)
	}
}
