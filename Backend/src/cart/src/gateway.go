package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	"github.com/ahinestrog/storefront/api/common"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewGateway exposes srv as a small JSON API for browser widgets such as the
// nav badge.
func NewGateway(srv cartapi.CartServer, allowedOrigins []string) (http.Handler, error) {
	mux := runtime.NewServeMux()
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/v1/cart/{session}", func(w http.ResponseWriter, r *http.Request, p map[string]string) {
			cv, err := srv.GetCart(r.Context(), &common.SessionRef{SessionID: p["session"]})
			writeView(w, cv, err)
		}},
		{http.MethodDelete, "/v1/cart/{session}", func(w http.ResponseWriter, r *http.Request, p map[string]string) {
			cv, err := srv.ClearCart(r.Context(), &common.SessionRef{SessionID: p["session"]})
			writeView(w, cv, err)
		}},
		{http.MethodPost, "/v1/cart/{session}/items/{book}", func(w http.ResponseWriter, r *http.Request, p map[string]string) {
			cv, err := srv.AddItem(r.Context(), &cartapi.AddItemRequest{SessionID: p["session"], BookID: p["book"]})
			writeView(w, cv, err)
		}},
		{http.MethodPut, "/v1/cart/{session}/items/{book}", func(w http.ResponseWriter, r *http.Request, p map[string]string) {
			qty, err := strconv.ParseInt(r.URL.Query().Get("qty"), 10, 32)
			if err != nil {
				writeView(w, nil, status.Error(codes.InvalidArgument, "qty must be an integer"))
				return
			}
			cv, err := srv.UpdateQuantity(r.Context(), &cartapi.UpdateQuantityRequest{
				SessionID: p["session"],
				BookID:    p["book"],
				Qty:       int32(qty),
			})
			writeView(w, cv, err)
		}},
		{http.MethodDelete, "/v1/cart/{session}/items/{book}", func(w http.ResponseWriter, r *http.Request, p map[string]string) {
			cv, err := srv.RemoveItem(r.Context(), &cartapi.RemoveItemRequest{SessionID: p["session"], BookID: p["book"]})
			writeView(w, cv, err)
		}},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return nil, err
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	})
	return c.Handler(mux), nil
}

func writeView(w http.ResponseWriter, cv *cartapi.CartView, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(runtime.HTTPStatusFromCode(status.Code(err)))
		_ = json.NewEncoder(w).Encode(map[string]string{"error": status.Convert(err).Message()})
		return
	}
	_ = json.NewEncoder(w).Encode(cv)
}
