package main

import (
	"time"

	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
	"github.com/ahinestrog/storefront/api/common"
)

type OrderStatus = checkoutapi.OrderStatus

type Order struct {
	ID          string
	SessionID   string
	Status      OrderStatus
	TotalCents  int64
	Shipping    checkoutapi.Shipping
	CardLast4   string
	ProviderRef string
	CreatedUnix int64
	UpdatedUnix int64
	Items       []OrderItem
}

type OrderItem struct {
	BookID    string
	Title     string
	Qty       int32
	UnitCents int64
	LineCents int64
}

func orderToPB(o *Order) *checkoutapi.Order {
	lines := make([]*checkoutapi.OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, &checkoutapi.OrderLine{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitPrice: common.Money{Cents: it.UnitCents},
			LineTotal: common.Money{Cents: it.LineCents},
		})
	}
	return &checkoutapi.Order{
		OrderID:     o.ID,
		Status:      o.Status,
		Lines:       lines,
		Total:       common.Money{Cents: o.TotalCents},
		CardLast4:   o.CardLast4,
		UpdatedUnix: o.UpdatedUnix,
	}
}

func nowUnix() int64 { return time.Now().Unix() }
