package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
)

func TestTimeoutPassesFastHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Timeout(time.Second))
	router.GET("/fast", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTimeoutWritesExactlyOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Timeout(30 * time.Millisecond))

	release := make(chan struct{})
	finished := make(chan struct{})
	router.GET("/slow", func(c *gin.Context) {
		defer close(finished)
		<-release
		c.JSON(http.StatusOK, gin.H{"status": "too late"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, w.Body.String())

	// A handler finishing after the deadline must not touch the response
	close(release)
	<-finished
	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.JSONEq(t, `{"error":"Request timeout"}`, w.Body.String())
}
