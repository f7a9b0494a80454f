// Servidor gRPC del carrito; todo el estado vive en el Registry.
package main

import (
	"context"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	"github.com/ahinestrog/storefront/api/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CartServer struct {
	cartapi.UnimplementedCartServer
	carts *Registry
	books BookLookup
}

func NewCartServer(carts *Registry, books BookLookup) *CartServer {
	return &CartServer{carts: carts, books: books}
}

func (s *CartServer) cart(sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id required")
	}
	return s.carts.Get(sessionID), nil
}

func (s *CartServer) GetCart(ctx context.Context, req *common.SessionRef) (*cartapi.CartView, error) {
	c, err := s.cart(req.SessionID)
	if err != nil {
		return nil, err
	}
	return toCartView(c.Items()), nil
}

func (s *CartServer) AddItem(ctx context.Context, req *cartapi.AddItemRequest) (*cartapi.CartView, error) {
	c, err := s.cart(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.BookID == "" {
		return nil, status.Error(codes.InvalidArgument, "book_id required")
	}
	b, err := s.books.GetBook(ctx, req.BookID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, status.Errorf(codes.NotFound, "book %q not found", req.BookID)
		}
		return nil, status.Errorf(codes.Unavailable, "catalog: %v", err)
	}
	c.AddToCart(b)
	return toCartView(c.Items()), nil
}

func (s *CartServer) RemoveItem(ctx context.Context, req *cartapi.RemoveItemRequest) (*cartapi.CartView, error) {
	c, err := s.cart(req.SessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveFromCart(req.BookID)
	return toCartView(c.Items()), nil
}

func (s *CartServer) UpdateQuantity(ctx context.Context, req *cartapi.UpdateQuantityRequest) (*cartapi.CartView, error) {
	c, err := s.cart(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Qty > MaxQty {
		return nil, status.Errorf(codes.InvalidArgument, "qty must be at most %d", MaxQty)
	}
	c.UpdateQuantity(req.BookID, req.Qty)
	return toCartView(c.Items()), nil
}

func (s *CartServer) ClearCart(ctx context.Context, req *common.SessionRef) (*cartapi.CartView, error) {
	c, err := s.cart(req.SessionID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return toCartView(c.Items()), nil
}

func toCartView(items []CartItem) *cartapi.CartView {
	view := &cartapi.CartView{Items: make([]*cartapi.CartItem, 0, len(items))}
	for _, it := range items {
		line := it.LineTotal()
		view.Items = append(view.Items, &cartapi.CartItem{
			BookID:    it.BookID,
			Title:     it.Title,
			Author:    it.Author,
			CoverURL:  it.CoverURL,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			LineTotal: line,
		})
	}
	view.TotalItems = totalItems(items)
	view.Total = totalPrice(items)
	return view
}
