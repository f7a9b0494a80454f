package main

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/ahinestrog/storefront/api/common"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	s.renderGrid(w, r, "/shop", "Shop", true)
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	s.renderGrid(w, r, "/library", "Library", false)
}

func (s *Server) renderGrid(w http.ResponseWriter, r *http.Request, path, title string, showCart bool) {
	sid := session(w, r)
	ctx, cancel := s.ctx(r)
	defer cancel()

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	resp, err := s.catalog.ListBooks(ctx, &catalogapi.ListBooksRequest{
		Q:    q,
		Page: &common.PageRequest{Page: int32(page), PageSize: s.cfg.PageSize},
	})
	if err != nil {
		log.Error().Err(err).Str("q", q).Msg("list books")
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	cv := s.cartView(ctx, sid)

	grid := gridView{
		Books:    toCards(resp.Items, cv),
		ShowCart: showCart,
		Action:   path,
		Page:     resp.Page,
	}
	if p := resp.Page; p != nil {
		if p.Page > 1 {
			grid.PrevURL = pageURL(path, r.URL.Query(), p.Page-1)
		}
		if p.Page < p.TotalPages {
			grid.NextURL = pageURL(path, r.URL.Query(), p.Page+1)
		}
	}
	s.render(w, http.StatusOK, "shop", pageData{
		Title:     title,
		CartCount: cv.TotalItems,
		Msg:       r.URL.Query().Get("msg"),
		Query:     q,
		Body:      grid,
	})
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	sid := session(w, r)
	ctx, cancel := s.ctx(r)
	defer cancel()

	id := r.PathValue("id")
	b, err := s.catalog.GetBook(ctx, &catalogapi.GetBookRequest{ID: id})
	switch status.Code(err) {
	case codes.OK:
	case codes.NotFound, codes.InvalidArgument:
		http.Error(w, "book not found", http.StatusNotFound)
		return
	default:
		log.Error().Err(err).Str("book", id).Msg("get book")
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	cv := s.cartView(ctx, sid)
	var inCart int32
	for _, it := range cv.Items {
		if it.BookID == b.ID {
			inCart = it.Qty
		}
	}
	s.render(w, http.StatusOK, "book", pageData{
		Title:     b.Title,
		CartCount: cv.TotalItems,
		Msg:       r.URL.Query().Get("msg"),
		Body:      bookView{Book: b, InCart: inCart},
	})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	sid := session(w, r)
	ctx, cancel := s.ctx(r)
	defer cancel()

	cv, err := s.cart.GetCart(ctx, &common.SessionRef{SessionID: sid})
	if err != nil {
		log.Error().Err(err).Str("session", sid).Msg("get cart")
		http.Error(w, "cart unavailable", http.StatusBadGateway)
		return
	}
	s.render(w, http.StatusOK, "cart", pageData{
		Title:     "Cart",
		CartCount: cv.TotalItems,
		Msg:       r.URL.Query().Get("msg"),
		Body:      cv,
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.mutateCart(w, r, "Added to cart", func(ctx context.Context, sid, bookID string) error {
		_, err := s.cart.AddItem(ctx, &cartapi.AddItemRequest{SessionID: sid, BookID: bookID})
		return err
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	qty, err := strconv.ParseInt(r.FormValue("qty"), 10, 32)
	if err != nil {
		http.Error(w, "invalid qty", http.StatusBadRequest)
		return
	}
	s.mutateCart(w, r, "Cart updated", func(ctx context.Context, sid, bookID string) error {
		_, err := s.cart.UpdateQuantity(ctx, &cartapi.UpdateQuantityRequest{SessionID: sid, BookID: bookID, Qty: int32(qty)})
		return err
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.mutateCart(w, r, "Removed from cart", func(ctx context.Context, sid, bookID string) error {
		_, err := s.cart.RemoveItem(ctx, &cartapi.RemoveItemRequest{SessionID: sid, BookID: bookID})
		return err
	})
}

// mutateCart applies a cart change for the posted book_id and redirects back
// (PRG) to the posted "return" path, or /cart.
func (s *Server) mutateCart(w http.ResponseWriter, r *http.Request, msg string, call func(ctx context.Context, sid, bookID string) error) {
	sid := session(w, r)
	bookID := r.FormValue("book_id")
	if bookID == "" {
		http.Error(w, "book_id required", http.StatusBadRequest)
		return
	}
	ctx, cancel := s.ctx(r)
	defer cancel()

	if err := call(ctx, sid, bookID); err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			http.Error(w, "book not found", http.StatusNotFound)
			return
		case codes.InvalidArgument:
			http.Error(w, status.Convert(err).Message(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("session", sid).Str("book", bookID).Msg("cart mutation")
		http.Error(w, "cart unavailable", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, withMsg(returnPath(r.FormValue("return")), msg), http.StatusSeeOther)
}

// returnPath only accepts local absolute paths.
func returnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "/cart"
	}
	return p
}

func withMsg(path, msg string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set("msg", msg)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Server) handleCheckoutForm(w http.ResponseWriter, r *http.Request) {
	sid := session(w, r)
	ctx, cancel := s.ctx(r)
	defer cancel()

	cv := s.cartView(ctx, sid)
	s.render(w, http.StatusOK, "checkout", pageData{
		Title:     "Checkout",
		CartCount: cv.TotalItems,
		Msg:       r.URL.Query().Get("msg"),
		Body:      checkoutView{Cart: cv},
	})
}

func (s *Server) handleCheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	sid := session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := formShipping{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Address: r.PostForm.Get("address"),
		City:    r.PostForm.Get("city"),
		ZipCode: r.PostForm.Get("zipCode"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.CheckoutTimeout)
	defer cancel()
	o, err := s.checkout.PlaceOrder(ctx, &checkoutapi.PlaceOrderRequest{
		SessionID: sid,
		Shipping: checkoutapi.Shipping{
			Name:    form.Name,
			Email:   form.Email,
			Address: form.Address,
			City:    form.City,
			ZipCode: form.ZipCode,
		},
		Payment: checkoutapi.Payment{
			CardNumber: r.PostForm.Get("cardNumber"),
			ExpiryDate: r.PostForm.Get("expiryDate"),
			CVV:        r.PostForm.Get("cvv"),
		},
	})

	code := http.StatusOK
	switch status.Code(err) {
	case codes.OK:
		log.Info().Str("session", sid).Str("order", o.OrderID).Msg("checkout complete")
		http.Redirect(w, r, withMsg("/shop", "Order placed successfully! Order "+o.OrderID), http.StatusSeeOther)
		return
	case codes.FailedPrecondition:
		http.Redirect(w, r, withMsg("/cart", "Your cart is empty"), http.StatusSeeOther)
		return
	case codes.InvalidArgument:
		code = http.StatusBadRequest
	case codes.Aborted:
		code = http.StatusConflict
	default:
		log.Error().Err(err).Str("session", sid).Msg("place order")
		code = http.StatusBadGateway
	}

	cvCtx, cvCancel := s.ctx(r)
	defer cvCancel()
	cv := s.cartView(cvCtx, sid)
	s.render(w, code, "checkout", pageData{
		Title:     "Checkout",
		CartCount: cv.TotalItems,
		Body: checkoutView{
			Cart:     cv,
			Shipping: form,
			Errors:   []string{status.Convert(err).Message()},
		},
	})
}
