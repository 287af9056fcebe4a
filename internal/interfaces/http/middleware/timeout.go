package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// timeoutWriter gates response writes so that the handler goroutine and the
// timeout branch cannot both write. Once timedOut is set, handler writes are
// dropped with http.ErrHandlerTimeout.
type timeoutWriter struct {
	gin.ResponseWriter
	mu       sync.Mutex
	timedOut bool
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) WriteHeaderNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	return w.ResponseWriter.Write(b)
}

func (w *timeoutWriter) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	return w.ResponseWriter.WriteString(s)
}

// Timeout bounds request handling; the deadline propagates to store calls
// through the request context. A handler finishing after the deadline has its
// writes discarded instead of racing the timeout response.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		tw := &timeoutWriter{ResponseWriter: c.Writer}
		c.Writer = tw

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Next()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			c.Abort()
			tw.mu.Lock()
			tw.timedOut = true
			if !tw.ResponseWriter.Written() {
				tw.ResponseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
				tw.ResponseWriter.WriteHeader(http.StatusRequestTimeout)
				tw.ResponseWriter.WriteString(`{"error":"Request timeout"}`)
			}
			tw.mu.Unlock()
		}
	}
}
