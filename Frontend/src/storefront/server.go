package main

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/ahinestrog/storefront/api/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

const sessionCookie = "sid"

var pages = []string{"shop", "book", "cart", "checkout"}

type Server struct {
	cfg      Config
	tpl      map[string]*template.Template
	catalog  catalogapi.CatalogClient
	cart     cartapi.CartClient
	checkout checkoutapi.CheckoutClient
}

func NewServer(cfg Config, catalog catalogapi.CatalogClient, cart cartapi.CartClient, checkout checkoutapi.CheckoutClient) (*Server, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	tpl := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.Must(layout.Clone()).ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		tpl[name] = t
	}
	return &Server{cfg: cfg, tpl: tpl, catalog: catalog, cart: cart, checkout: checkout}, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/shop", http.StatusFound)
	})
	mux.HandleFunc("GET /shop", s.handleShop)
	mux.HandleFunc("GET /library", s.handleLibrary)
	mux.HandleFunc("GET /library/{id}", s.handleBook)
	mux.HandleFunc("GET /cart", s.handleCart)
	mux.HandleFunc("POST /cart/add", s.handleAdd)
	mux.HandleFunc("POST /cart/update", s.handleUpdate)
	mux.HandleFunc("POST /cart/remove", s.handleRemove)
	mux.HandleFunc("GET /checkout", s.handleCheckoutForm)
	mux.HandleFunc("POST /checkout", s.handleCheckoutSubmit)
	return withLog(mux)
}

func withLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// session returns the visitor's session id, issuing a new sid cookie when the
// request has none or it is not a uuid.
func session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Later reads within this request see the same session.
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: sid})
	return sid
}

func (s *Server) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 3*time.Second)
}

// cartView never fails: pages still render with an empty badge when the cart
// service is down.
func (s *Server) cartView(ctx context.Context, sid string) *cartapi.CartView {
	cv, err := s.cart.GetCart(ctx, &common.SessionRef{SessionID: sid})
	if err != nil {
		log.Warn().Err(err).Str("session", sid).Msg("get cart")
		return &cartapi.CartView{}
	}
	return cv
}

type pageData struct {
	Title     string
	CartCount int32
	Msg       string
	Query     string
	Body      any
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	t, ok := s.tpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
