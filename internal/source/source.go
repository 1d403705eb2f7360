// Package source provides the portfolio data sources. The core treats a
// source as "something that asynchronously yields properties and payments
// or fails"; both the fixed-dataset stub and the sqlite-backed source
// satisfy the same contract.
package source

import (
	"context"
	"errors"

	"github.com/hybel/portfolio/internal/types"
)

// SentinelServerErrorID triggers a simulated server failure from
// GetPropertyByID. Used by demos and tests to exercise the error path.
const SentinelServerErrorID = "Server_error"

var (
	// ErrNotFound means no property exists with the requested id.
	ErrNotFound = errors.New("property not found")

	// ErrServer is a simulated upstream server failure.
	ErrServer = errors.New("server error: failed to fetch property data")
)

// DataSource yields portfolio data asynchronously.
type DataSource interface {
	// LoadPortfolioData returns the full raw dataset or fails.
	LoadPortfolioData(ctx context.Context) (types.PortfolioData, error)

	// GetPropertyByID returns a single property, ErrNotFound when the id is
	// unknown, or ErrServer for the designated sentinel id.
	GetPropertyByID(ctx context.Context, id string) (*types.Property, error)
}
