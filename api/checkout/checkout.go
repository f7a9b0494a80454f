// Package checkout is the wire contract of the checkout service.
package checkout

import (
	"context"

	"github.com/ahinestrog/storefront/api/common"
	"github.com/ahinestrog/storefront/api/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "mybookstore.checkout.Checkout"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusFailed     OrderStatus = "FAILED"
)

type Shipping struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

type Payment struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

type PlaceOrderRequest struct {
	SessionID string   `json:"session_id"`
	Shipping  Shipping `json:"shipping"`
	Payment   Payment  `json:"payment"`
}

type OrderLine struct {
	BookID    string       `json:"book_id"`
	Title     string       `json:"title"`
	Qty       int32        `json:"qty"`
	UnitPrice common.Money `json:"unit_price"`
	LineTotal common.Money `json:"line_total"`
}

type Order struct {
	OrderID     string       `json:"order_id"`
	Status      OrderStatus  `json:"status"`
	Lines       []*OrderLine `json:"lines"`
	Total       common.Money `json:"total"`
	CardLast4   string       `json:"card_last4"`
	UpdatedUnix int64        `json:"updated_unix"`
}

type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

type CheckoutServer interface {
	PlaceOrder(context.Context, *PlaceOrderRequest) (*Order, error)
	GetOrder(context.Context, *GetOrderRequest) (*Order, error)
}

type UnimplementedCheckoutServer struct{}

func (UnimplementedCheckoutServer) PlaceOrder(context.Context, *PlaceOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method PlaceOrder not implemented")
}

func (UnimplementedCheckoutServer) GetOrder(context.Context, *GetOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CheckoutServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "PlaceOrder", CheckoutServer.PlaceOrder),
		rpc.Unary(ServiceName, "GetOrder", CheckoutServer.GetOrder),
	},
}

func RegisterCheckoutServer(s grpc.ServiceRegistrar, srv CheckoutServer) {
	s.RegisterService(&serviceDesc, srv)
}

type CheckoutClient interface {
	PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*Order, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error)
}

type checkoutClient struct{ cc grpc.ClientConnInterface }

func NewCheckoutClient(cc grpc.ClientConnInterface) CheckoutClient { return &checkoutClient{cc: cc} }

func (c *checkoutClient) PlaceOrder(ctx context.Context, in *PlaceOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return rpc.Invoke[Order](ctx, c.cc, ServiceName, "PlaceOrder", in, opts...)
}

func (c *checkoutClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return rpc.Invoke[Order](ctx, c.cc, ServiceName, "GetOrder", in, opts...)
}
