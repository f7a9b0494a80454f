package main

import (
	"context"
	"errors"
	"math"

	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	"github.com/ahinestrog/storefront/api/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultPageSize int32 = 20
	maxPageSize     int32 = 100
)

type CatalogServer struct {
	catalogapi.UnimplementedCatalogServer
	repo  Repository
	books *lru.Cache[string, *catalogapi.Book]
}

// NewCatalogServer caches up to cacheSize GetBook results; the catalog never
// changes while the service runs.
func NewCatalogServer(repo Repository, cacheSize int) (*CatalogServer, error) {
	books, err := lru.New[string, *catalogapi.Book](cacheSize)
	if err != nil {
		return nil, err
	}
	return &CatalogServer{repo: repo, books: books}, nil
}

func (s *CatalogServer) ListBooks(ctx context.Context, in *catalogapi.ListBooksRequest) (*catalogapi.ListBooksResponse, error) {
	// Normaliza paginación
	page := int32(1)
	size := defaultPageSize
	if in.Page != nil {
		if in.Page.Page > 0 {
			page = in.Page.Page
		}
		if in.Page.PageSize > 0 {
			size = in.Page.PageSize
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	offset := (page - 1) * size

	total, err := s.repo.Count(ctx, in.Q)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "count: %v", err)
	}

	items, err := s.repo.List(ctx, in.Q, size, offset)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list: %v", err)
	}

	out := make([]*catalogapi.Book, 0, len(items))
	for _, b := range items {
		out = append(out, bookToPB(b))
	}

	return &catalogapi.ListBooksResponse{
		Items: out,
		Page: &common.PageResponse{
			Page:       page,
			PageSize:   size,
			TotalPages: int32(math.Ceil(float64(total) / float64(size))),
			TotalItems: total,
		},
	}, nil
}

func (s *CatalogServer) GetBook(ctx context.Context, in *catalogapi.GetBookRequest) (*catalogapi.Book, error) {
	if in.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	if b, ok := s.books.Get(in.ID); ok {
		return b, nil
	}
	b, err := s.repo.Get(ctx, in.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, status.Errorf(codes.NotFound, "%v", err)
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get: %v", err)
	}
	pb := bookToPB(b)
	s.books.Add(in.ID, pb)
	return pb, nil
}
