// Package common holds the message types shared by several services.
package common

import (
	"fmt"
	"math"
)

// Money is an amount in cents.
type Money struct {
	Cents int64 `json:"cents"`
}

func (m Money) Add(o Money) Money   { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Mul(qty int32) Money { return Money{Cents: m.Cents * int64(qty)} }

// Float returns the amount in currency units; cents make it exact to two decimals.
func (m Money) Float() float64 { return float64(m.Cents) / 100 }

func (m Money) String() string { return fmt.Sprintf("%.2f", m.Float()) }

// FromFloat converts a price such as 24.99 to cents, rounding half away from zero.
func FromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

type SessionRef struct {
	SessionID string `json:"session_id"`
}

type PageRequest struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type PageResponse struct {
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
	TotalPages int32 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}
