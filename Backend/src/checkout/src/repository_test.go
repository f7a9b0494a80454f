package main

import (
	"context"
	"path/filepath"
	"testing"

	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "checkout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	o := &Order{
		ID:          "o-1",
		SessionID:   "s1",
		Status:      checkoutapi.OrderStatusProcessing,
		TotalCents:  3498,
		Shipping:    validShipping(),
		CardLast4:   "4242",
		CreatedUnix: 100,
		UpdatedUnix: 100,
		Items: []OrderItem{
			{BookID: "a", Title: "Book A", Qty: 1, UnitCents: 2499, LineCents: 2499},
			{BookID: "b", Title: "Book B", Qty: 1, UnitCents: 999, LineCents: 999},
		},
	}
	require.NoError(t, repo.CreateOrder(ctx, o))

	got, err := repo.GetOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutapi.OrderStatusProcessing, got.Status)
	assert.Equal(t, o.Shipping, got.Shipping)
	assert.Equal(t, o.Items, got.Items)

	require.NoError(t, repo.UpdateStatus(ctx, "o-1", checkoutapi.OrderStatusPlaced, "SIM-o-1"))
	got, err = repo.GetOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutapi.OrderStatusPlaced, got.Status)
	assert.Equal(t, "SIM-o-1", got.ProviderRef)
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", checkoutapi.OrderStatusFailed, ""), ErrNotFound)
}
