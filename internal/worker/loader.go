// Package worker contains the background workers that move data between the
// external source and the dashboard store.
package worker

import (
	"context"
	"log"

	"github.com/hybel/portfolio/internal/source"
	"github.com/hybel/portfolio/internal/store"
)

// Loader runs the load sequence: begin (loading flag + generation token),
// fetch from the source, then complete or fail the store. The generation
// token makes overlapping reloads last-write-wins: a slow fetch that
// resolves after a newer reload began is discarded by the store.
type Loader struct {
	src source.DataSource
	st  *store.Store
}

// NewLoader creates a Loader.
func NewLoader(src source.DataSource, st *store.Store) *Loader {
	return &Loader{src: src, st: st}
}

// Load fetches synchronously and applies the result to the store.
func (l *Loader) Load(ctx context.Context) error {
	gen := l.st.BeginLoad()

	data, err := l.src.LoadPortfolioData(ctx)
	if err != nil {
		l.st.FailLoad(gen, err.Error())
		return err
	}

	l.st.CompleteLoad(gen, data.Properties, data.Payments)
	return nil
}

// LoadAsync starts a load in a goroutine and returns immediately. Errors
// surface through the store's error state.
func (l *Loader) LoadAsync(ctx context.Context) {
	go func() {
		if err := l.Load(ctx); err != nil {
			// Already recorded in the store; log only.
			log.Printf("loader: async load error: %v", err)
		}
	}()
}
