package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ahinestrog/storefront/api/common"
)

// PaymentProvider charges an order. Only a simulated provider exists; a real
// gateway would plug in here.
type PaymentProvider interface {
	Charge(ctx context.Context, orderID string, amount common.Money) (providerRef string, err error)
}

type simulatedProvider struct {
	delay time.Duration
}

func newSimulatedProvider(delay time.Duration) PaymentProvider {
	return &simulatedProvider{delay: delay}
}

// Charge always succeeds after the configured delay unless ctx ends first.
func (p *simulatedProvider) Charge(ctx context.Context, orderID string, amount common.Money) (string, error) {
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.C:
	}
	return fmt.Sprintf("SIM-%s-%d", orderID, amount.Cents), nil
}
