package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheServesSecondGetFromMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()
	t.Cleanup(PurgeCache)

	var hits int32
	r := gin.New()
	r.GET("/cached", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt32(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"value": "fresh"})
	})

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send("/cached")
	second := send("/cached")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second request should be served from cache")

	// 查询参数不同视为不同条目
	send("/cached?page=2")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCacheSkipsNonOKResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()
	t.Cleanup(PurgeCache)

	var hits int32
	r := gin.New()
	r.GET("/missing", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt32(&hits, 1)
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "error responses must not be cached")
}

func TestCacheIgnoresPost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	PurgeCache()
	t.Cleanup(PurgeCache)

	var hits int32
	r := gin.New()
	r.POST("/write", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		atomic.AddInt32(&hits, 1)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
