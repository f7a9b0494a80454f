package main

import (
	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	"github.com/ahinestrog/storefront/api/common"
)

type Section = catalogapi.Section

type Book struct {
	ID            string
	Title         string
	Author        string
	Year          int32
	Pages         int32
	Rating        float64
	RatingsCount  string
	PriceCents    int64
	CoverURL      string
	AudioURL      string
	AudioDuration string
	Genres        []string
	Series        string
	Description   string
	PlotSummary   []Section
	IsBestseller  bool
}

// seedBook is one entry of db/books.json; prices there are in currency units.
type seedBook struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Year          int32     `json:"year"`
	Pages         int32     `json:"pages"`
	Rating        float64   `json:"rating"`
	RatingsCount  string    `json:"ratings_count"`
	Price         float64   `json:"price"`
	CoverURL      string    `json:"cover_url"`
	AudioURL      string    `json:"audio_url"`
	AudioDuration string    `json:"audio_duration"`
	Genres        []string  `json:"genres"`
	Series        string    `json:"series"`
	Description   string    `json:"description"`
	PlotSummary   []Section `json:"plot_summary"`
	IsBestseller  bool      `json:"is_bestseller"`
}

func (s seedBook) toBook() *Book {
	return &Book{
		ID:            s.ID,
		Title:         s.Title,
		Author:        s.Author,
		Year:          s.Year,
		Pages:         s.Pages,
		Rating:        s.Rating,
		RatingsCount:  s.RatingsCount,
		PriceCents:    common.FromFloat(s.Price).Cents,
		CoverURL:      s.CoverURL,
		AudioURL:      s.AudioURL,
		AudioDuration: s.AudioDuration,
		Genres:        s.Genres,
		Series:        s.Series,
		Description:   s.Description,
		PlotSummary:   s.PlotSummary,
		IsBestseller:  s.IsBestseller,
	}
}

// ---- mapping entidad <-> wire ----

func bookToPB(b *Book) *catalogapi.Book {
	return &catalogapi.Book{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Year:          b.Year,
		Pages:         b.Pages,
		Rating:        b.Rating,
		RatingsCount:  b.RatingsCount,
		Price:         common.Money{Cents: b.PriceCents},
		CoverURL:      b.CoverURL,
		AudioURL:      b.AudioURL,
		AudioDuration: b.AudioDuration,
		Genres:        b.Genres,
		Series:        b.Series,
		Description:   b.Description,
		PlotSummary:   b.PlotSummary,
		IsBestseller:  b.IsBestseller,
	}
}
