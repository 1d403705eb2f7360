// Package store owns the mutable dashboard state (raw collections, filter
// spec, and UI flags) and republishes a derived view model whenever any
// input changes. All derivation is delegated to the pure portfolio package;
// the store only guards ownership and versioning.
package store

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hybel/portfolio/internal/portfolio"
	"github.com/hybel/portfolio/internal/types"
)

// Generation identifies one load sequence. Completions carrying a stale
// generation are ignored, making last-write-wins explicit instead of racy.
type Generation string

// Listener is notified after every state write. Callbacks run synchronously
// under no lock; they must not call back into the store's mutators.
type Listener func(vm types.PortfolioViewModel)

type namedListener struct {
	name string
	fn   Listener
}

// Store is the single stateful wrapper around the derivation pipeline.
// Writes replace whole values; reads recompute the view model lazily and
// cache it per version, so two reads without an intervening write return
// the identical snapshot.
type Store struct {
	mu sync.Mutex

	properties []types.Property
	payments   []types.RentPayment
	filters    types.PropertyFilters
	loading    bool
	err        string

	generation Generation

	version   uint64
	cached    types.PortfolioViewModel
	cachedVer uint64

	now       func() time.Time
	listeners []namedListener
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the reference-time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store with default filters.
func New(opts ...Option) *Store {
	s := &Store{
		properties: []types.Property{},
		payments:   []types.RentPayment{},
		filters:    portfolio.DefaultFilters(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a named listener invoked after every write with the
// freshly derived view model.
func (s *Store) Subscribe(name string, fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, namedListener{name: name, fn: fn})
}

// Unsubscribe removes the listener registered under name. Unknown names are
// ignored.
func (s *Store) Unsubscribe(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.name == name {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// SetProperties replaces the raw property collection.
func (s *Store) SetProperties(properties []types.Property) {
	s.write(func() {
		s.properties = append([]types.Property(nil), properties...)
	})
}

// SetPayments replaces the raw payment collection.
func (s *Store) SetPayments(payments []types.RentPayment) {
	s.write(func() {
		s.payments = append([]types.RentPayment(nil), payments...)
	})
}

// UpdateFilters patches the current filter spec field by field.
func (s *Store) UpdateFilters(patch portfolio.FilterPatch) {
	s.write(func() {
		s.filters = portfolio.MergeFilters(s.filters, patch)
	})
}

// ResetFilters restores the default (all-inactive) filter spec.
func (s *Store) ResetFilters() {
	s.write(func() {
		s.filters = portfolio.DefaultFilters()
	})
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.write(func() {
		s.loading = loading
	})
}

// SetError stores an upstream failure message; empty clears it.
func (s *Store) SetError(err string) {
	s.write(func() {
		s.err = err
	})
}

// BeginLoad marks the start of a load sequence: loading set, stale error
// cleared, and a fresh generation token issued. Any load begun earlier is
// implicitly superseded.
func (s *Store) BeginLoad() Generation {
	gen := Generation(uuid.NewString())
	s.write(func() {
		s.generation = gen
		s.loading = true
		s.err = ""
	})
	return gen
}

// CompleteLoad installs the fetched collections and clears loading, unless
// a newer load has begun since gen was issued.
func (s *Store) CompleteLoad(gen Generation, properties []types.Property, payments []types.RentPayment) {
	s.writeIfCurrent(gen, func() {
		s.properties = append([]types.Property(nil), properties...)
		s.payments = append([]types.RentPayment(nil), payments...)
		s.loading = false
		s.err = ""
	})
}

// FailLoad records the upstream failure and clears loading, unless a newer
// load has begun since gen was issued.
func (s *Store) FailLoad(gen Generation, errMsg string) {
	s.writeIfCurrent(gen, func() {
		s.loading = false
		s.err = errMsg
	})
}

// ViewModel returns the current derived snapshot, recomputing only when
// state has changed since the last read.
func (s *Store) ViewModel() types.PortfolioViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewModelLocked()
}

// Now returns the store's reference time. Handlers use it so detail views
// share the dashboard's clock under test.
func (s *Store) Now() time.Time {
	return s.now()
}

// Filters returns the current filter spec.
func (s *Store) Filters() types.PropertyFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Payments returns a copy of the raw payment collection.
func (s *Store) Payments() []types.RentPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.RentPayment(nil), s.payments...)
}

func (s *Store) viewModelLocked() types.PortfolioViewModel {
	if s.cachedVer == s.version && s.version != 0 {
		return s.cached
	}
	s.cached = portfolio.BuildViewModel(portfolio.BuildInput{
		Properties: s.properties,
		Payments:   s.payments,
		Filters:    s.filters,
		Loading:    s.loading,
		Err:        s.err,
		Now:        s.now(),
	})
	s.cachedVer = s.version
	if s.version == 0 {
		// Version 0 means "never written"; bump so the zero-state snapshot
		// is cacheable too.
		s.version = 1
		s.cachedVer = 1
	}
	return s.cached
}

func (s *Store) write(apply func()) {
	s.mu.Lock()
	apply()
	s.version++
	vm := s.viewModelLocked()
	listeners := append([]namedListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, vm)
}

func (s *Store) writeIfCurrent(gen Generation, apply func()) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		log.Printf("store: ignoring stale load result (generation %s)", gen)
		return
	}
	apply()
	s.version++
	vm := s.viewModelLocked()
	listeners := append([]namedListener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, vm)
}

func (s *Store) notify(listeners []namedListener, vm types.PortfolioViewModel) {
	for _, l := range listeners {
		l.fn(vm)
	}
}
