package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/catalog"
	"github.com/your-org/storefront-api/internal/domain/wishlist"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
)

// wishlistMemStore keeps per-user wishlists in memory with set semantics and
// doubles as the catalog existence check
type wishlistMemStore struct {
	mu      sync.Mutex
	entries map[uint][]uint
	catalog map[uint]catalog.Product
}

func newWishlistMemStore(products ...catalog.Product) *wishlistMemStore {
	s := &wishlistMemStore{
		entries: make(map[uint][]uint),
		catalog: make(map[uint]catalog.Product),
	}
	for _, p := range products {
		s.catalog[p.ID] = p
	}
	return s
}

func (s *wishlistMemStore) Add(ctx context.Context, userID, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.entries[userID] {
		if id == productID {
			return nil
		}
	}
	s.entries[userID] = append(s.entries[userID], productID)
	return nil
}

func (s *wishlistMemStore) Remove(ctx context.Context, userID, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[userID][:0]
	for _, id := range s.entries[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.entries[userID] = kept
	return nil
}

// ProductIDs returns nil for an empty wishlist, matching gorm's zero-row Pluck
func (s *wishlistMemStore) ProductIDs(ctx context.Context, userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries[userID]) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(s.entries[userID]))
	copy(ids, s.entries[userID])
	return ids, nil
}

// Products returns nil for an empty wishlist, matching gorm's zero-row Find
func (s *wishlistMemStore) Products(ctx context.Context, userID uint) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []catalog.Product
	for _, id := range s.entries[userID] {
		if p, ok := s.catalog[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *wishlistMemStore) Exists(ctx context.Context, productID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.catalog[productID]
	return ok, nil
}

func newWishlistRouter(t *testing.T, store *wishlistMemStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := handlers.NewWishlistHandler(wishlist.NewService(store, store, logrus.NewEntry(logger)))

	router := gin.New()
	group := router.Group("/api/wishlist")
	group.Use(authAs(1))
	group.POST("", handler.AddToWishlist)
	group.GET("", handler.GetWishlist)
	group.DELETE("/:productId", handler.RemoveFromWishlist)

	return router
}

func TestAddToWishlistIdempotent(t *testing.T) {
	store := newWishlistMemStore(
		catalog.Product{ID: 3, Name: "Scarf", Price: 1800},
	)
	router := newWishlistRouter(t, store)

	w := doJSON(router, http.MethodPost, "/api/wishlist", `{"productId":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var first struct {
		Wishlist []uint `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, []uint{3}, first.Wishlist)

	// Adding twice yields the same wishlist as adding once
	w = doJSON(router, http.MethodPost, "/api/wishlist", `{"productId":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var second struct {
		Wishlist []uint `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.Wishlist, second.Wishlist)
}

func TestAddToWishlistUnknownProduct(t *testing.T) {
	router := newWishlistRouter(t, newWishlistMemStore())

	w := doJSON(router, http.MethodPost, "/api/wishlist", `{"productId":99}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestGetWishlistEmptyReturnsArray(t *testing.T) {
	router := newWishlistRouter(t, newWishlistMemStore())

	w := doJSON(router, http.MethodGet, "/api/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"wishlist":[]}`, w.Body.String())
}

func TestGetWishlistResolvesRecords(t *testing.T) {
	store := newWishlistMemStore(
		catalog.Product{ID: 3, Name: "Scarf", Price: 1800},
		catalog.Product{ID: 5, Name: "Belt", Price: 1200},
	)
	router := newWishlistRouter(t, store)

	doJSON(router, http.MethodPost, "/api/wishlist", `{"productId":3}`)
	doJSON(router, http.MethodPost, "/api/wishlist", `{"productId":5}`)

	w := doJSON(router, http.MethodGet, "/api/wishlist", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Wishlist []catalog.Product `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Wishlist, 2)
	assert.Equal(t, "Scarf", resp.Wishlist[0].Name)
	assert.Equal(t, "Belt", resp.Wishlist[1].Name)
}

func TestRemoveFromWishlist(t *testing.T) {
	store := newWishlistMemStore(
		catalog.Product{ID: 3, Name: "Scarf", Price: 1800},
	)
	router := newWishlistRouter(t, store)

	doJSON(router, http.MethodPost, "/api/wishlist", `{"productId":3}`)

	// Removing an absent product is a no-op
	w := doJSON(router, http.MethodDelete, "/api/wishlist/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Wishlist []uint `json:"wishlist"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []uint{3}, resp.Wishlist)

	// Removing the last item still yields an array, not null
	w = doJSON(router, http.MethodDelete, "/api/wishlist/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"wishlist":[]}`, w.Body.String())
}
