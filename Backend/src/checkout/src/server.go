package main

import (
	"context"
	"errors"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/ahinestrog/storefront/api/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CheckoutServer struct {
	checkoutapi.UnimplementedCheckoutServer
	repo     *Repository
	cart     cartapi.CartClient
	provider PaymentProvider
	events   Publisher
	busy     *inFlight
}

func NewCheckoutServer(repo *Repository, cart cartapi.CartClient, provider PaymentProvider, events Publisher) *CheckoutServer {
	return &CheckoutServer{
		repo:     repo,
		cart:     cart,
		provider: provider,
		events:   events,
		busy:     newInFlight(),
	}
}

// PlaceOrder turns the session's cart into an order. While one submission is
// being processed, further submissions for the same session are rejected.
func (s *CheckoutServer) PlaceOrder(ctx context.Context, req *checkoutapi.PlaceOrderRequest) (*checkoutapi.Order, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id required")
	}
	if err := validateForm(req.Shipping, req.Payment); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if !s.busy.acquire(req.SessionID) {
		return nil, status.Error(codes.Aborted, "checkout already in progress")
	}
	defer s.busy.release(req.SessionID)

	// 1) Obtener carrito
	cv, err := s.cart.GetCart(ctx, &common.SessionRef{SessionID: req.SessionID})
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "cart: %v", err)
	}
	if len(cv.Items) == 0 {
		return nil, status.Error(codes.FailedPrecondition, "cart is empty")
	}

	// 2) Registrar la orden en estado PROCESSING
	o := newOrder(req, cv)
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, status.Errorf(codes.Internal, "create order: %v", err)
	}

	// 3) Cobro simulado
	ref, err := s.provider.Charge(ctx, o.ID, common.Money{Cents: o.TotalCents})
	if err != nil {
		s.fail(o, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Errorf(codes.Aborted, "payment: %v", err)
	}
	if err := s.repo.UpdateStatus(ctx, o.ID, checkoutapi.OrderStatusPlaced, ref); err != nil {
		return nil, status.Errorf(codes.Internal, "update order: %v", err)
	}
	o.Status = checkoutapi.OrderStatusPlaced
	o.ProviderRef = ref
	o.UpdatedUnix = nowUnix()

	// 4) Vaciar carrito; la orden ya existe, no se revierte si falla.
	// Clear drops the whole cart, including lines added after the snapshot in step 1.
	if _, err := s.cart.ClearCart(ctx, &common.SessionRef{SessionID: req.SessionID}); err != nil {
		log.Warn().Err(err).Str("order", o.ID).Msg("clear cart failed after order placed")
	}

	// 5) Publicar evento
	if err := s.events.PublishJSON(ctx, RKOrderPlaced, orderPlacedPayload(o)); err != nil {
		log.Warn().Err(err).Str("order", o.ID).Msg("publish order placed failed")
	}

	log.Info().
		Str("order", o.ID).
		Str("session", o.SessionID).
		Int64("total_cents", o.TotalCents).
		Msg("order placed")
	return orderToPB(o), nil
}

func (s *CheckoutServer) GetOrder(ctx context.Context, req *checkoutapi.GetOrderRequest) (*checkoutapi.Order, error) {
	if req.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id required")
	}
	o, err := s.repo.GetOrder(ctx, req.OrderID)
	if errors.Is(err, ErrNotFound) {
		return nil, status.Errorf(codes.NotFound, "order %s not found", req.OrderID)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	return orderToPB(o), nil
}

// fail records a failed payment; the request context may already be done.
func (s *CheckoutServer) fail(o *Order, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.repo.UpdateStatus(ctx, o.ID, checkoutapi.OrderStatusFailed, ""); err != nil {
		log.Error().Err(err).Str("order", o.ID).Msg("mark order failed")
	}
	log.Warn().Err(cause).Str("order", o.ID).Msg("payment failed")
}

func newOrder(req *checkoutapi.PlaceOrderRequest, cv *cartapi.CartView) *Order {
	now := nowUnix()
	o := &Order{
		ID:          uuid.NewString(),
		SessionID:   req.SessionID,
		Status:      checkoutapi.OrderStatusProcessing,
		Shipping:    req.Shipping,
		CardLast4:   cardLast4(req.Payment.CardNumber),
		CreatedUnix: now,
		UpdatedUnix: now,
	}
	for _, it := range cv.Items {
		line := it.UnitPrice.Mul(it.Qty)
		o.Items = append(o.Items, OrderItem{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitCents: it.UnitPrice.Cents,
			LineCents: line.Cents,
		})
		o.TotalCents += line.Cents
	}
	return o
}

func orderPlacedPayload(o *Order) OrderPlacedPayload {
	p := OrderPlacedPayload{OrderID: o.ID, SessionID: o.SessionID, TotalCents: o.TotalCents}
	for _, it := range o.Items {
		p.Items = append(p.Items, OrderItemEvt{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitCents: it.UnitCents,
			LineCents: it.LineCents,
		})
	}
	return p
}
