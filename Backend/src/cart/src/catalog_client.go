package main

import (
	"context"
	"time"

	catalogapi "github.com/ahinestrog/storefront/api/catalog"
	"google.golang.org/grpc"
)

type BookLookup interface {
	GetBook(ctx context.Context, id string) (Book, error)
}

type CatalogClient struct {
	client  catalogapi.CatalogClient
	timeout time.Duration
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{client: catalogapi.NewCatalogClient(cc), timeout: 4 * time.Second}
}

func (c *CatalogClient) GetBook(ctx context.Context, id string) (Book, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	b, err := c.client.GetBook(ctx, &catalogapi.GetBookRequest{ID: id})
	if err != nil {
		return Book{}, err
	}
	return Book{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		CoverURL: b.CoverURL,
		Price:    b.Price,
	}, nil
}
