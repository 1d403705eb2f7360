package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybel/portfolio/internal/portfolio"
	"github.com/hybel/portfolio/internal/types"
)

var testRef = time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() func() time.Time {
	return func() time.Time { return testRef }
}

func testStore() *Store {
	return New(WithClock(fixedClock()))
}

func sampleProperty(id string, status types.PropertyStatus) types.Property {
	return types.Property{
		ID:          id,
		Address:     id + " street",
		City:        "Oslo",
		PostalCode:  "0001",
		Type:        types.TypeFlat,
		Status:      status,
		MonthlyRent: 10000,
		Currency:    types.DefaultCurrency,
	}
}

func samplePayment(id, propertyID string, status types.PaymentStatus) types.RentPayment {
	return types.RentPayment{
		ID:         id,
		PropertyID: propertyID,
		Amount:     10000,
		Currency:   types.DefaultCurrency,
		DueDate:    testRef,
		Status:     status,
		Month:      "2025-02",
	}
}

func TestStore_EmptyViewModel(t *testing.T) {
	st := testStore()
	vm := st.ViewModel()

	assert.False(t, vm.HasProperties)
	assert.True(t, vm.ShowEmptyState)
	assert.False(t, vm.Loading.IsLoading)
	assert.False(t, vm.Error.HasError)
}

func TestStore_RecomputesOnWrite(t *testing.T) {
	st := testStore()
	st.SetProperties([]types.Property{sampleProperty("p1", types.StatusRented)})

	vm := st.ViewModel()
	require.Len(t, vm.Properties, 1)
	assert.Equal(t, 100, vm.Statistics.OccupancyRate)

	st.SetPayments([]types.RentPayment{samplePayment("pay-1", "p1", types.PaymentOverdue)})
	vm = st.ViewModel()
	assert.True(t, vm.Properties[0].HasOverduePayment)
	assert.Equal(t, 1, vm.NeedsAttentionCount)
}

func TestStore_CachesBetweenWrites(t *testing.T) {
	st := testStore()
	st.SetProperties([]types.Property{sampleProperty("p1", types.StatusRented)})

	first := st.ViewModel()
	second := st.ViewModel()
	assert.Equal(t, first, second, "reads without writes return the identical snapshot")
}

func TestStore_UpdateAndResetFilters(t *testing.T) {
	st := testStore()
	st.SetProperties([]types.Property{
		sampleProperty("p1", types.StatusRented),
		sampleProperty("p2", types.StatusAvailable),
	})

	status := types.StatusRented
	st.UpdateFilters(portfolio.FilterPatch{Status: &status})

	vm := st.ViewModel()
	require.Len(t, vm.FilteredProperties, 1)
	assert.Equal(t, "p1", vm.FilteredProperties[0].ID)
	assert.True(t, vm.HasActiveFilters)

	st.ResetFilters()
	vm = st.ViewModel()
	assert.Len(t, vm.FilteredProperties, 2)
	assert.False(t, vm.HasActiveFilters)
}

func TestStore_LoadingAndError(t *testing.T) {
	st := testStore()

	st.SetLoading(true)
	assert.True(t, st.ViewModel().Loading.IsLoading)

	st.SetLoading(false)
	st.SetError("upstream failed")
	vm := st.ViewModel()
	assert.False(t, vm.Loading.IsLoading)
	assert.True(t, vm.Error.HasError)
	assert.Equal(t, "upstream failed", vm.Error.ErrorMessage)

	st.SetError("")
	assert.False(t, st.ViewModel().Error.HasError)
}

func TestStore_LoadGeneration(t *testing.T) {
	st := testStore()

	gen := st.BeginLoad()
	assert.True(t, st.ViewModel().Loading.IsLoading)

	st.CompleteLoad(gen, []types.Property{sampleProperty("p1", types.StatusRented)}, nil)
	vm := st.ViewModel()
	assert.False(t, vm.Loading.IsLoading)
	require.Len(t, vm.Properties, 1)
}

func TestStore_StaleLoadIgnored(t *testing.T) {
	st := testStore()

	stale := st.BeginLoad()
	fresh := st.BeginLoad()

	// The slow first load resolves after the second began: discarded.
	st.CompleteLoad(stale, []types.Property{sampleProperty("old", types.StatusRented)}, nil)
	vm := st.ViewModel()
	assert.True(t, vm.Loading.IsLoading, "stale completion must not clear loading")
	assert.Empty(t, vm.Properties)

	st.CompleteLoad(fresh, []types.Property{sampleProperty("new", types.StatusRented)}, nil)
	vm = st.ViewModel()
	assert.False(t, vm.Loading.IsLoading)
	require.Len(t, vm.Properties, 1)
	assert.Equal(t, "new", vm.Properties[0].ID)
}

func TestStore_StaleFailureIgnored(t *testing.T) {
	st := testStore()

	stale := st.BeginLoad()
	fresh := st.BeginLoad()

	st.FailLoad(stale, "timeout")
	assert.False(t, st.ViewModel().Error.HasError, "stale failure must not surface")

	st.FailLoad(fresh, "real failure")
	vm := st.ViewModel()
	assert.True(t, vm.Error.HasError)
	assert.Equal(t, "real failure", vm.Error.ErrorMessage)
	assert.False(t, vm.Loading.IsLoading)
}

func TestStore_BeginLoadClearsError(t *testing.T) {
	st := testStore()
	st.SetError("old failure")

	st.BeginLoad()
	vm := st.ViewModel()
	assert.False(t, vm.Error.HasError)
	assert.True(t, vm.Loading.IsLoading)
}

func TestStore_SubscribersNotifiedPerWrite(t *testing.T) {
	st := testStore()

	var got []types.PortfolioViewModel
	st.Subscribe("test", func(vm types.PortfolioViewModel) {
		got = append(got, vm)
	})

	st.SetProperties([]types.Property{sampleProperty("p1", types.StatusRented)})
	st.SetLoading(true)

	require.Len(t, got, 2)
	assert.Len(t, got[0].Properties, 1)
	assert.True(t, got[1].Loading.IsLoading)
}

func TestStore_UnsubscribeStopsNotifications(t *testing.T) {
	st := testStore()

	calls := 0
	st.Subscribe("test", func(types.PortfolioViewModel) { calls++ })

	st.SetLoading(true)
	st.Unsubscribe("test")
	st.SetLoading(false)

	assert.Equal(t, 1, calls)
	st.Unsubscribe("missing")
}

func TestStore_WholeValueReplacement(t *testing.T) {
	st := testStore()

	input := []types.Property{sampleProperty("p1", types.StatusRented)}
	st.SetProperties(input)

	// Mutating the caller's slice after the write must not leak into the store.
	input[0].Status = types.StatusAvailable
	vm := st.ViewModel()

	// A fresh write is needed to see a change.
	assert.Equal(t, types.StatusRented, vm.Properties[0].Status)
}
