// Package catalog is the wire contract of the catalog service.
package catalog

import (
	"context"

	"github.com/ahinestrog/storefront/api/common"
	"github.com/ahinestrog/storefront/api/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "mybookstore.catalog.Catalog"

type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Book struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Year          int32        `json:"year"`
	Pages         int32        `json:"pages"`
	Rating        float64      `json:"rating"`
	RatingsCount  string       `json:"ratings_count"`
	Price         common.Money `json:"price"`
	CoverURL      string       `json:"cover_url"`
	AudioURL      string       `json:"audio_url"`
	AudioDuration string       `json:"audio_duration"`
	Genres        []string     `json:"genres"`
	Series        string       `json:"series,omitempty"`
	Description   string       `json:"description"`
	PlotSummary   []Section    `json:"plot_summary"`
	IsBestseller  bool         `json:"is_bestseller"`
}

type ListBooksRequest struct {
	Q    string              `json:"q"`
	Page *common.PageRequest `json:"page,omitempty"`
}

type ListBooksResponse struct {
	Items []*Book              `json:"items"`
	Page  *common.PageResponse `json:"page"`
}

type GetBookRequest struct {
	ID string `json:"id"`
}

type CatalogServer interface {
	ListBooks(context.Context, *ListBooksRequest) (*ListBooksResponse, error)
	GetBook(context.Context, *GetBookRequest) (*Book, error)
}

type UnimplementedCatalogServer struct{}

func (UnimplementedCatalogServer) ListBooks(context.Context, *ListBooksRequest) (*ListBooksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBooks not implemented")
}

func (UnimplementedCatalogServer) GetBook(context.Context, *GetBookRequest) (*Book, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBook not implemented")
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ListBooks", CatalogServer.ListBooks),
		rpc.Unary(ServiceName, "GetBook", CatalogServer.GetBook),
	},
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&serviceDesc, srv)
}

type CatalogClient interface {
	ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error)
	GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error)
}

type catalogClient struct{ cc grpc.ClientConnInterface }

func NewCatalogClient(cc grpc.ClientConnInterface) CatalogClient { return &catalogClient{cc: cc} }

func (c *catalogClient) ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error) {
	return rpc.Invoke[ListBooksResponse](ctx, c.cc, ServiceName, "ListBooks", in, opts...)
}

func (c *catalogClient) GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error) {
	return rpc.Invoke[Book](ctx, c.cc, ServiceName, "GetBook", in, opts...)
}
