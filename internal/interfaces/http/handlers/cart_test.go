package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

// cartMemStore mirrors the document store semantics for handler tests
type cartMemStore struct {
	mu    sync.Mutex
	carts map[uint]*cart.Cart
}

func newCartMemStore() *cartMemStore {
	return &cartMemStore{carts: make(map[uint]*cart.Cart)}
}

func (s *cartMemStore) copy(c *cart.Cart) *cart.Cart {
	data, _ := json.Marshal(c)
	var out cart.Cart
	_ = json.Unmarshal(data, &out)
	return &out
}

func (s *cartMemStore) Load(ctx context.Context, userID uint) (*cart.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, false, nil
	}
	return s.copy(c), true, nil
}

func (s *cartMemStore) Save(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.UserID] = s.copy(c)
	return nil
}

func (s *cartMemStore) Mutate(ctx context.Context, userID uint, fn func(*cart.Cart) error) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		c = cart.NewCart(userID)
	} else {
		c = s.copy(c)
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	s.carts[userID] = s.copy(c)
	return c, nil
}

// stubCatalog resolves products from a fixed map
type stubCatalog map[uint]cart.ProductDetails

func (s stubCatalog) Resolve(ctx context.Context, productID uint) (*cart.ProductDetails, error) {
	p, ok := s[productID]
	if !ok {
		return nil, cart.ErrProductNotFound
	}
	return &p, nil
}

// authAs stands in for the auth middleware, resolving every request to the
// given user id
func authAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	}
}

func newCartRouter(t *testing.T, store cart.Store, catalog cart.Catalog, authenticated bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := handlers.NewCartHandler(cart.NewService(store, catalog, logrus.NewEntry(logger)))

	router := gin.New()
	group := router.Group("/api/cart")
	if authenticated {
		group.Use(authAs(1))
	}
	group.GET("", handler.GetCart)
	group.POST("", handler.AddToCart)
	group.PUT("/:productId", handler.UpdateCartItem)
	group.DELETE("/:productId", handler.RemoveFromCart)
	group.DELETE("", handler.ClearCart)

	return router
}

func doJSON(router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartRequiresAuthentication(t *testing.T) {
	router := newCartRouter(t, newCartMemStore(), stubCatalog{}, false)

	w := doJSON(router, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCartReturnsEmptyArray(t *testing.T) {
	router := newCartRouter(t, newCartMemStore(), stubCatalog{}, true)

	w := doJSON(router, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAddToCartFlow(t *testing.T) {
	catalog := stubCatalog{
		42: {ID: 42, Name: "Hooded Jacket", Price: 4999, Image: "/images/jacket.jpg", Stock: 10},
	}
	router := newCartRouter(t, newCartMemStore(), catalog, true)

	w := doJSON(router, http.MethodPost, "/api/cart", `{"product":42,"quantity":1,"size":"M"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var items []cart.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, cart.SizeM, items[0].Size)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, uint(42), items[0].Product.ID)

	// Second add merges into the existing line
	w = doJSON(router, http.MethodPost, "/api/cart", `{"product":42,"quantity":2,"size":"M"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddToCartValidation(t *testing.T) {
	router := newCartRouter(t, newCartMemStore(), stubCatalog{}, true)

	// Malformed body
	w := doJSON(router, http.MethodPost, "/api/cart", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-positive quantity rejected by binding
	w = doJSON(router, http.MethodPost, "/api/cart", `{"product":42,"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown product
	w = doJSON(router, http.MethodPost, "/api/cart", `{"product":42,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestUpdateCartItem(t *testing.T) {
	catalog := stubCatalog{
		42: {ID: 42, Name: "Hooded Jacket", Price: 4999},
	}
	router := newCartRouter(t, newCartMemStore(), catalog, true)

	// No cart yet
	w := doJSON(router, http.MethodPut, "/api/cart/42", `{"quantity":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	doJSON(router, http.MethodPost, "/api/cart", `{"product":42,"quantity":5}`)

	w = doJSON(router, http.MethodPut, "/api/cart/42", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var items []cart.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, uint(42), items[0].ProductID)

	// Unknown item in an existing cart
	w = doJSON(router, http.MethodPut, "/api/cart/77", `{"quantity":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Non-numeric product id
	w = doJSON(router, http.MethodPut, "/api/cart/abc", `{"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveAndClearCart(t *testing.T) {
	catalog := stubCatalog{
		1: {ID: 1, Name: "Socks", Price: 500},
		2: {ID: 2, Name: "Cap", Price: 1500},
	}
	router := newCartRouter(t, newCartMemStore(), catalog, true)

	doJSON(router, http.MethodPost, "/api/cart", `{"product":1,"quantity":1}`)
	doJSON(router, http.MethodPost, "/api/cart", `{"product":2,"quantity":1}`)

	// Removing an absent product is a no-op
	w := doJSON(router, http.MethodDelete, "/api/cart/99", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []cart.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	w = doJSON(router, http.MethodDelete, "/api/cart/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].ProductID)

	w = doJSON(router, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Clearing again still returns an empty list
	w = doJSON(router, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
