package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_FallsBackToDefaults(t *testing.T) {
	// unconfigured source
	s := NewService(&ServiceConfig{})
	assert.Len(t, s.FindAll(nil), 2)

	// unreachable source
	s = NewService(&ServiceConfig{
		SourceURL:    "http://127.0.0.1:1/products.json",
		FetchTimeout: 200 * time.Millisecond,
	})
	assert.Len(t, s.FindAll(nil), 2)

	// malformed payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	s = NewService(&ServiceConfig{SourceURL: srv.URL})
	products := s.FindAll(nil)
	require.Len(t, products, 2)
	assert.Equal(t, "Anodized Aluminium Strip", products[0].Name)
}

func TestNewService_FetchesFromSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[
			{"id":1,"name":"Mirror Finish Strip","category":"strip","price":42.99,"unit":"/meter"},
			{"id":2,"name":"Industrial Grade Coil","category":"coil","price":15.25,"unit":"/kg"},
			{"id":3,"name":"Custom Fabricated Sheet","category":"sheet","price":55.00,"unit":"/piece"}
		]}`))
	}))
	defer srv.Close()

	s := NewService(&ServiceConfig{SourceURL: srv.URL})

	all := s.FindAll(nil)
	require.Len(t, all, 3)

	strips := s.FindAll(&FilterOpts{Category: CategoryStrip})
	require.Len(t, strips, 1)
	assert.Equal(t, "Mirror Finish Strip", strips[0].Name)

	searched := s.FindAll(&FilterOpts{Search: "industrial"})
	require.Len(t, searched, 1)
	assert.Equal(t, 2, searched[0].ID)

	product, err := s.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, 55.00, product.Price)

	_, err = s.FindByID(99)
	assert.Error(t, err)
}

func TestFindAll_ReturnsCopies(t *testing.T) {
	s := NewService(&ServiceConfig{})

	first := s.FindAll(nil)[0]
	first.Price = 0

	again := s.FindAll(nil)[0]
	assert.Equal(t, 25.99, again.Price, "callers must not be able to mutate catalog state")
}
