// Package cart is the wire contract of the cart service.
package cart

import (
	"context"

	"github.com/ahinestrog/storefront/api/common"
	"github.com/ahinestrog/storefront/api/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "mybookstore.cart.Cart"

// MaxQty is the largest quantity a cart line can hold.
const MaxQty int32 = 999

type CartItem struct {
	BookID    string       `json:"book_id"`
	Title     string       `json:"title"`
	Author    string       `json:"author"`
	CoverURL  string       `json:"cover_url"`
	Qty       int32        `json:"qty"`
	UnitPrice common.Money `json:"unit_price"`
	LineTotal common.Money `json:"line_total"`
}

type CartView struct {
	Items      []*CartItem  `json:"items"`
	TotalItems int32        `json:"total_items"`
	Total      common.Money `json:"total"`
}

type AddItemRequest struct {
	SessionID string `json:"session_id"`
	BookID    string `json:"book_id"`
}

type RemoveItemRequest struct {
	SessionID string `json:"session_id"`
	BookID    string `json:"book_id"`
}

// UpdateQuantityRequest sets the quantity of a line; Qty <= 0 removes it and
// Qty above MaxQty is rejected.
type UpdateQuantityRequest struct {
	SessionID string `json:"session_id"`
	BookID    string `json:"book_id"`
	Qty       int32  `json:"qty"`
}

type CartServer interface {
	GetCart(context.Context, *common.SessionRef) (*CartView, error)
	AddItem(context.Context, *AddItemRequest) (*CartView, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*CartView, error)
	UpdateQuantity(context.Context, *UpdateQuantityRequest) (*CartView, error)
	ClearCart(context.Context, *common.SessionRef) (*CartView, error)
}

type UnimplementedCartServer struct{}

func (UnimplementedCartServer) GetCart(context.Context, *common.SessionRef) (*CartView, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCart not implemented")
}

func (UnimplementedCartServer) AddItem(context.Context, *AddItemRequest) (*CartView, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItem not implemented")
}

func (UnimplementedCartServer) RemoveItem(context.Context, *RemoveItemRequest) (*CartView, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveItem not implemented")
}

func (UnimplementedCartServer) UpdateQuantity(context.Context, *UpdateQuantityRequest) (*CartView, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateQuantity not implemented")
}

func (UnimplementedCartServer) ClearCart(context.Context, *common.SessionRef) (*CartView, error) {
	return nil, status.Error(codes.Unimplemented, "method ClearCart not implemented")
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetCart", CartServer.GetCart),
		rpc.Unary(ServiceName, "AddItem", CartServer.AddItem),
		rpc.Unary(ServiceName, "RemoveItem", CartServer.RemoveItem),
		rpc.Unary(ServiceName, "UpdateQuantity", CartServer.UpdateQuantity),
		rpc.Unary(ServiceName, "ClearCart", CartServer.ClearCart),
	},
}

func RegisterCartServer(s grpc.ServiceRegistrar, srv CartServer) {
	s.RegisterService(&serviceDesc, srv)
}

type CartClient interface {
	GetCart(ctx context.Context, in *common.SessionRef, opts ...grpc.CallOption) (*CartView, error)
	AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartView, error)
	RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartView, error)
	UpdateQuantity(ctx context.Context, in *UpdateQuantityRequest, opts ...grpc.CallOption) (*CartView, error)
	ClearCart(ctx context.Context, in *common.SessionRef, opts ...grpc.CallOption) (*CartView, error)
}

type cartClient struct{ cc grpc.ClientConnInterface }

func NewCartClient(cc grpc.ClientConnInterface) CartClient { return &cartClient{cc: cc} }

func (c *cartClient) GetCart(ctx context.Context, in *common.SessionRef, opts ...grpc.CallOption) (*CartView, error) {
	return rpc.Invoke[CartView](ctx, c.cc, ServiceName, "GetCart", in, opts...)
}

func (c *cartClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartView, error) {
	return rpc.Invoke[CartView](ctx, c.cc, ServiceName, "AddItem", in, opts...)
}

func (c *cartClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartView, error) {
	return rpc.Invoke[CartView](ctx, c.cc, ServiceName, "RemoveItem", in, opts...)
}

func (c *cartClient) UpdateQuantity(ctx context.Context, in *UpdateQuantityRequest, opts ...grpc.CallOption) (*CartView, error) {
	return rpc.Invoke[CartView](ctx, c.cc, ServiceName, "UpdateQuantity", in, opts...)
}

func (c *cartClient) ClearCart(ctx context.Context, in *common.SessionRef, opts ...grpc.CallOption) (*CartView, error) {
	return rpc.Invoke[CartView](ctx, c.cc, ServiceName, "ClearCart", in, opts...)
}
