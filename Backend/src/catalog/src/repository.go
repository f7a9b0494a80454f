package main

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed db/db.sql
var schemaSQL string

//go:embed db/books.json
var seedJSON []byte

var ErrNotFound = errors.New("not found")

type Repository interface {
	Init(ctx context.Context) error
	Seed(ctx context.Context) (int, error)
	Count(ctx context.Context, q string) (int64, error)
	List(ctx context.Context, q string, limit, offset int32) ([]*Book, error)
	Get(ctx context.Context, id string) (*Book, error)
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schemaSQL)
	return err
}

// Seed loads the embedded catalog when the table is empty and reports how
// many books it inserted.
func (r *sqliteRepo) Seed(ctx context.Context) (int, error) {
	var c int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&c); err != nil {
		return 0, err
	}
	if c > 0 {
		return 0, nil
	}

	var seed []seedBook
	if err := json.Unmarshal(seedJSON, &seed); err != nil {
		return 0, fmt.Errorf("decode seed: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO books(id, position, title, author, year, pages, rating, ratings_count,
			price_cents, cover_url, audio_url, audio_duration, genres, series, description,
			plot_summary, is_bestseller)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, s := range seed {
		b := s.toBook()
		genres, err := json.Marshal(b.Genres)
		if err != nil {
			return 0, err
		}
		plot, err := json.Marshal(b.PlotSummary)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, b.ID, i, b.Title, b.Author, b.Year, b.Pages, b.Rating,
			b.RatingsCount, b.PriceCents, b.CoverURL, b.AudioURL, b.AudioDuration, string(genres),
			b.Series, b.Description, string(plot), b.IsBestseller); err != nil {
			return 0, fmt.Errorf("insert %s: %w", b.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(seed), nil
}

const bookColumns = `id, title, author, year, pages, rating, ratings_count, price_cents,
	cover_url, audio_url, audio_duration, genres, series, description, plot_summary, is_bestseller`

const searchClause = `WHERE lower(title) LIKE ? ESCAPE '\' OR lower(author) LIKE ? ESCAPE '\'`

func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}

func (r *sqliteRepo) Count(ctx context.Context, q string) (int64, error) {
	var c int64
	if strings.TrimSpace(q) == "" {
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`).Scan(&c)
		return c, err
	}
	qp := likePattern(q)
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books `+searchClause, qp, qp).Scan(&c)
	return c, err
}

func (r *sqliteRepo) List(ctx context.Context, q string, limit, offset int32) ([]*Book, error) {
	var rows *sql.Rows
	var err error
	if strings.TrimSpace(q) == "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+bookColumns+`
			FROM books ORDER BY position LIMIT ? OFFSET ?`, limit, offset)
	} else {
		qp := likePattern(q)
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+bookColumns+`
			FROM books `+searchClause+`
			ORDER BY position LIMIT ? OFFSET ?`, qp, qp, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) Get(ctx context.Context, id string) (*Book, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id=?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %s: %w", id, ErrNotFound)
	}
	return b, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*Book, error) {
	var b Book
	var genres, plot string
	if err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Pages, &b.Rating, &b.RatingsCount,
		&b.PriceCents, &b.CoverURL, &b.AudioURL, &b.AudioDuration, &genres, &b.Series,
		&b.Description, &plot, &b.IsBestseller); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(genres), &b.Genres); err != nil {
		return nil, fmt.Errorf("book %s genres: %w", b.ID, err)
	}
	if err := json.Unmarshal([]byte(plot), &b.PlotSummary); err != nil {
		return nil, fmt.Errorf("book %s plot summary: %w", b.ID, err)
	}
	return &b, nil
}
