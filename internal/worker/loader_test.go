package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybel/portfolio/internal/source"
	"github.com/hybel/portfolio/internal/store"
	"github.com/hybel/portfolio/internal/types"
)

// fakeSource lets tests script source behavior.
type fakeSource struct {
	data types.PortfolioData
	err  error
}

func (f *fakeSource) LoadPortfolioData(_ context.Context) (types.PortfolioData, error) {
	if f.err != nil {
		return types.PortfolioData{}, f.err
	}
	return f.data, nil
}

func (f *fakeSource) GetPropertyByID(_ context.Context, id string) (*types.Property, error) {
	for _, p := range f.data.Properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, source.ErrNotFound
}

func TestLoader_Success(t *testing.T) {
	src := &fakeSource{data: source.DemoData()}
	st := store.New()
	loader := NewLoader(src, st)

	err := loader.Load(context.Background())
	require.NoError(t, err)

	vm := st.ViewModel()
	assert.False(t, vm.Loading.IsLoading)
	assert.False(t, vm.Error.HasError)
	assert.Len(t, vm.Properties, len(src.data.Properties))
	assert.Len(t, vm.Payments, len(src.data.Payments))
}

func TestLoader_Failure(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	st := store.New()
	loader := NewLoader(src, st)

	err := loader.Load(context.Background())
	require.Error(t, err)

	vm := st.ViewModel()
	assert.False(t, vm.Loading.IsLoading, "failure must clear loading")
	assert.True(t, vm.Error.HasError)
	assert.Equal(t, "connection refused", vm.Error.ErrorMessage)
	assert.Empty(t, vm.Properties)
}

func TestLoader_SuccessClearsPreviousError(t *testing.T) {
	st := store.New()

	failing := NewLoader(&fakeSource{err: errors.New("boom")}, st)
	_ = failing.Load(context.Background())
	require.True(t, st.ViewModel().Error.HasError)

	working := NewLoader(&fakeSource{data: source.DemoData()}, st)
	require.NoError(t, working.Load(context.Background()))

	vm := st.ViewModel()
	assert.False(t, vm.Error.HasError)
	assert.NotEmpty(t, vm.Properties)
}
