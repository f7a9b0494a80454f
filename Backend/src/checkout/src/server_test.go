package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/ahinestrog/storefront/api/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fakeCart serves a fixed cart per session and records clears.
type fakeCart struct {
	cartapi.CartClient
	mu      sync.Mutex
	carts   map[string]*cartapi.CartView
	cleared []string
	getErr  error
}

func (f *fakeCart) GetCart(_ context.Context, in *common.SessionRef, _ ...grpc.CallOption) (*cartapi.CartView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if cv, ok := f.carts[in.SessionID]; ok {
		return cv, nil
	}
	return &cartapi.CartView{}, nil
}

func (f *fakeCart) ClearCart(_ context.Context, in *common.SessionRef, _ ...grpc.CallOption) (*cartapi.CartView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, in.SessionID)
	f.cleared = append(f.cleared, in.SessionID)
	return &cartapi.CartView{}, nil
}

func (f *fakeCart) clearedSessions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cleared...)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	msgs []any
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.msgs = append(p.msgs, v)
	return nil
}

// gateProvider blocks every charge until release is closed.
type gateProvider struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGateProvider() *gateProvider {
	return &gateProvider{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateProvider) Charge(ctx context.Context, orderID string, amount common.Money) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "GATE-" + orderID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type failingProvider struct{}

func (failingProvider) Charge(context.Context, string, common.Money) (string, error) {
	return "", errors.New("card declined")
}

func twoBookCart() *cartapi.CartView {
	return &cartapi.CartView{
		Items: []*cartapi.CartItem{
			{BookID: "a", Title: "Book A", Qty: 1, UnitPrice: common.Money{Cents: 2499}},
			{BookID: "b", Title: "Book B", Qty: 2, UnitPrice: common.Money{Cents: 999}},
		},
		TotalItems: 3,
		Total:      common.Money{Cents: 4497},
	}
}

func placeReq(session string) *checkoutapi.PlaceOrderRequest {
	return &checkoutapi.PlaceOrderRequest{SessionID: session, Shipping: validShipping(), Payment: validPayment()}
}

func TestPlaceOrderSuccess(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	cart := &fakeCart{carts: map[string]*cartapi.CartView{"s1": twoBookCart()}}
	pub := &fakePublisher{}
	srv := NewCheckoutServer(repo, cart, newSimulatedProvider(10*time.Millisecond), pub)

	o, err := srv.PlaceOrder(ctx, placeReq("s1"))
	require.NoError(t, err)
	assert.Equal(t, checkoutapi.OrderStatusPlaced, o.Status)
	assert.Equal(t, int64(4497), o.Total.Cents)
	assert.Equal(t, "4242", o.CardLast4)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, int64(1998), o.Lines[1].LineTotal.Cents)

	assert.Equal(t, []string{"s1"}, cart.clearedSessions())
	assert.Equal(t, []string{RKOrderPlaced}, pub.keys)
	payload, ok := pub.msgs[0].(OrderPlacedPayload)
	require.True(t, ok)
	assert.Equal(t, o.OrderID, payload.OrderID)
	assert.Len(t, payload.Items, 2)

	stored, err := srv.GetOrder(ctx, &checkoutapi.GetOrderRequest{OrderID: o.OrderID})
	require.NoError(t, err)
	assert.Equal(t, checkoutapi.OrderStatusPlaced, stored.Status)
	assert.Equal(t, o.Total, stored.Total)
}

func TestPlaceOrderRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("missing session", func(t *testing.T) {
		srv := NewCheckoutServer(newTestRepo(t), &fakeCart{}, newSimulatedProvider(0), &fakePublisher{})
		_, err := srv.PlaceOrder(ctx, placeReq(""))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("invalid form", func(t *testing.T) {
		cart := &fakeCart{carts: map[string]*cartapi.CartView{"s1": twoBookCart()}}
		srv := NewCheckoutServer(newTestRepo(t), cart, newSimulatedProvider(0), &fakePublisher{})
		req := placeReq("s1")
		req.Payment.CVV = "12345"
		_, err := srv.PlaceOrder(ctx, req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.Contains(t, status.Convert(err).Message(), "cvv")
		assert.Empty(t, cart.clearedSessions())
	})

	t.Run("empty cart", func(t *testing.T) {
		cart := &fakeCart{carts: map[string]*cartapi.CartView{}}
		srv := NewCheckoutServer(newTestRepo(t), cart, newSimulatedProvider(0), &fakePublisher{})
		_, err := srv.PlaceOrder(ctx, placeReq("s1"))
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})

	t.Run("cart unavailable", func(t *testing.T) {
		cart := &fakeCart{getErr: errors.New("connection refused")}
		srv := NewCheckoutServer(newTestRepo(t), cart, newSimulatedProvider(0), &fakePublisher{})
		_, err := srv.PlaceOrder(ctx, placeReq("s1"))
		assert.Equal(t, codes.Unavailable, status.Code(err))
	})

	t.Run("payment failure keeps the cart", func(t *testing.T) {
		cart := &fakeCart{carts: map[string]*cartapi.CartView{"s1": twoBookCart()}}
		pub := &fakePublisher{}
		srv := NewCheckoutServer(newTestRepo(t), cart, failingProvider{}, pub)
		_, err := srv.PlaceOrder(ctx, placeReq("s1"))
		assert.Equal(t, codes.Aborted, status.Code(err))
		assert.Empty(t, cart.clearedSessions())
		assert.Empty(t, pub.keys)
	})
}

func TestPlaceOrderRejectsSecondSubmitWhileProcessing(t *testing.T) {
	ctx := context.Background()
	cart := &fakeCart{carts: map[string]*cartapi.CartView{"s1": twoBookCart()}}
	gate := newGateProvider()
	srv := NewCheckoutServer(newTestRepo(t), cart, gate, &fakePublisher{})

	type result struct {
		o   *checkoutapi.Order
		err error
	}
	first := make(chan result, 1)
	go func() {
		o, err := srv.PlaceOrder(ctx, placeReq("s1"))
		first <- result{o, err}
	}()
	<-gate.started

	_, err := srv.PlaceOrder(ctx, placeReq("s1"))
	assert.Equal(t, codes.Aborted, status.Code(err))
	assert.Empty(t, cart.clearedSessions())

	close(gate.release)
	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, checkoutapi.OrderStatusPlaced, res.o.Status)
	assert.Equal(t, []string{"s1"}, cart.clearedSessions())

	// The flag is released once the first checkout finishes.
	_, err = srv.PlaceOrder(ctx, placeReq("s1"))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestGetOrderErrors(t *testing.T) {
	ctx := context.Background()
	srv := NewCheckoutServer(newTestRepo(t), &fakeCart{}, newSimulatedProvider(0), &fakePublisher{})

	_, err := srv.GetOrder(ctx, &checkoutapi.GetOrderRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = srv.GetOrder(ctx, &checkoutapi.GetOrderRequest{OrderID: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
