package main

import (
	"html/template"
	"net/url"
	"strconv"
	"time"

	cartapi "github.com/ahinestrog/storefront/api/cart"
	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	"github.com/ahinestrog/storefront/api/common"
	"github.com/dustin/go-humanize"
)

var funcs = template.FuncMap{
	"price": formatPrice,
	"count": func(n int32) string { return humanize.Comma(int64(n)) },
	"year":  func() int { return time.Now().Year() },
	"dec":   func(n int32) int32 { return n - 1 },
	"inc":   func(n int32) int32 { return n + 1 },
	"atMax": func(n int32) bool { return n >= cartapi.MaxQty },
}

// formatPrice renders cents as "$1,234.50".
func formatPrice(m common.Money) string {
	return "$" + humanize.FormatFloat("#,###.##", m.Float())
}

type bookCard struct {
	ID       string
	Title    string
	Author   string
	CoverURL string
	Price    common.Money
	Rating   float64
	InCart   int32
	Best     bool
}

type gridView struct {
	Books    []bookCard
	ShowCart bool
	Action   string
	Page     *common.PageResponse
	PrevURL  string
	NextURL  string
}

func toCards(books []*catalogapi.Book, cv *cartapi.CartView) []bookCard {
	inCart := make(map[string]int32, len(cv.Items))
	for _, it := range cv.Items {
		inCart[it.BookID] = it.Qty
	}
	cards := make([]bookCard, 0, len(books))
	for _, b := range books {
		cards = append(cards, bookCard{
			ID:       b.ID,
			Title:    b.Title,
			Author:   b.Author,
			CoverURL: b.CoverURL,
			Price:    b.Price,
			Rating:   b.Rating,
			InCart:   inCart[b.ID],
			Best:     b.IsBestseller,
		})
	}
	return cards
}

// pageURL keeps the current query and swaps the page number.
func pageURL(path string, q url.Values, page int32) string {
	qs := url.Values{}
	for k, v := range q {
		qs[k] = v
	}
	qs.Del("msg")
	qs.Set("page", strconv.Itoa(int(page)))
	return path + "?" + qs.Encode()
}

type bookView struct {
	Book   *catalogapi.Book
	InCart int32
}

type checkoutView struct {
	Cart     *cartapi.CartView
	Shipping formShipping
	Errors   []string
}

// formShipping mirrors the form inputs so they survive a failed submission.
// Payment fields are never echoed back.
type formShipping struct {
	Name    string
	Email   string
	Address string
	City    string
	ZipCode string
}
