package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allows whitelisted origin", func(t *testing.T) {
		router := newTestRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"http://gym.local"},
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Content-Type"},
		}))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://gym.local")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://gym.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("does not set headers for unknown origin", func(t *testing.T) {
		router := newTestRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"http://gym.local"},
		}))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		router := newTestRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"*"},
		}))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		router := newTestRouter(CORSWithConfig(CORSConfig{
			AllowOrigins: []string{"http://gym.local"},
			AllowMethods: []string{"GET"},
		}))

		req := httptest.NewRequest("OPTIONS", "/ping", nil)
		req.Header.Set("Origin", "http://gym.local")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://gym.local", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist rejects cross-origin", func(t *testing.T) {
		router := newTestRouter(CORSWithConfig(DefaultCORSConfig()))

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://gym.local")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID when none supplied", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequestID())
		var seen string
		router.GET("/ping", func(c *gin.Context) {
			seen = c.GetString("request_id")
			c.String(http.StatusOK, "pong")
		})

		req := httptest.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("honors caller-supplied ID", func(t *testing.T) {
		router := newTestRouter(RequestID())

		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "front-desk-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "front-desk-42", w.Header().Get("X-Request-ID"))
	})
}

func TestSecure(t *testing.T) {
	router := newTestRouter(Secure())

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
