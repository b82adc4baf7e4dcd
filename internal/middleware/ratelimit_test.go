package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_BurstThenLimited(t *testing.T) {
	rl := NewRateLimiter(60, 3)

	r := gin.New()
	r.GET("/ping", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d within burst: status = %d, want 200", i, codes[i])
		}
	}
	for i := 3; i < 5; i++ {
		if codes[i] != http.StatusTooManyRequests {
			t.Errorf("request %d past burst: status = %d, want 429", i, codes[i])
		}
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(60, 1)

	if !rl.allow("u:1") {
		t.Error("first call for u:1 should pass")
	}
	if rl.allow("u:1") {
		t.Error("second call for u:1 should be limited")
	}
	if !rl.allow("u:2") {
		t.Error("u:2 has its own bucket and should pass")
	}
}
