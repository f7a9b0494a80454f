package main

import "github.com/ahinestrog/storefront/api/common"

type Money = common.Money

// Book is the part of a catalog record copied into the cart when it is added.
type Book struct {
	ID       string
	Title    string
	Author   string
	CoverURL string
	Price    Money
}

type CartItem struct {
	BookID    string
	Title     string
	Author    string
	CoverURL  string
	UnitPrice Money
	Qty       int32
}

func (it CartItem) LineTotal() Money { return it.UnitPrice.Mul(it.Qty) }
