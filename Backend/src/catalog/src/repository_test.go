package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := openSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))
	n, err := repo.Seed(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return repo
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	n, err := repo.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	c, err := repo.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), c)
}

func TestGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	b, err := repo.Get(ctx, "solo-leveling")
	require.NoError(t, err)
	assert.Equal(t, "Solo Leveling", b.Title)
	assert.Equal(t, "Chugong", b.Author)
	assert.Equal(t, int64(1699), b.PriceCents)
	assert.Equal(t, []string{"Fantasy", "Action", "Adventure", "Manhwa"}, b.Genres)
	assert.Equal(t, "Solo Leveling #1", b.Series)
	require.Len(t, b.PlotSummary, 2)
	assert.Equal(t, "The Weakest Hunter", b.PlotSummary[0].Title)
	assert.True(t, b.IsBestseller)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"100m-money-models", "a-dance-with-dragons", "solo-leveling", "the-subtle-art"}},
		{"DRAGONS", []string{"a-dance-with-dragons"}},
		{"manson", []string{"the-subtle-art"}},
		{"r. r.", []string{"a-dance-with-dragons"}},
		{"%", nil},
		{"no such book", nil},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			books, err := repo.List(ctx, tt.q, 20, 0)
			require.NoError(t, err)
			var ids []string
			for _, b := range books {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)

			c, err := repo.Count(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), c)
		})
	}
}

func TestListPaging(t *testing.T) {
	repo := newTestRepo(t)
	books, err := repo.List(context.Background(), "", 2, 2)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "solo-leveling", books[0].ID)
}
