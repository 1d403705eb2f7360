package source

import (
	"context"
	"time"

	"github.com/hybel/portfolio/internal/types"
)

// DefaultDelay approximates a realistic fetch latency for demos.
const DefaultDelay = 800 * time.Millisecond

// StubSource serves a fixed in-memory dataset after a configurable delay.
// It is context-aware: a cancelled context aborts the simulated fetch.
type StubSource struct {
	delay      time.Duration
	properties []types.Property
	payments   []types.RentPayment
}

// NewStubSource creates a StubSource with the demo dataset.
func NewStubSource(delay time.Duration) *StubSource {
	return &StubSource{
		delay:      delay,
		properties: DemoProperties(),
		payments:   DemoPayments(),
	}
}

// LoadPortfolioData returns the full dataset after the configured delay.
func (s *StubSource) LoadPortfolioData(ctx context.Context) (types.PortfolioData, error) {
	if err := s.wait(ctx); err != nil {
		return types.PortfolioData{}, err
	}
	return types.PortfolioData{
		Properties: append([]types.Property(nil), s.properties...),
		Payments:   append([]types.RentPayment(nil), s.payments...),
	}, nil
}

// GetPropertyByID returns the matching property, ErrServer for the sentinel
// id, or ErrNotFound.
func (s *StubSource) GetPropertyByID(ctx context.Context, id string) (*types.Property, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if id == SentinelServerErrorID {
		return nil, ErrServer
	}
	for _, p := range s.properties {
		if p.ID == id {
			prop := p
			return &prop, nil
		}
	}
	return nil, ErrNotFound
}

func (s *StubSource) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
