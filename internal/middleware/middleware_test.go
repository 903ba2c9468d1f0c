package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_RefillsPerInterval(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.1.1.1") || !rl.allow("1.1.1.1") {
		t.Fatalf("first two requests should pass")
	}
	if rl.allow("1.1.1.1") {
		t.Fatalf("third request should be limited")
	}
	if !rl.allow("2.2.2.2") {
		t.Fatalf("other visitors have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.allow("1.1.1.1") {
		t.Fatalf("bucket should refill after one interval")
	}

	now = now.Add(visitorTTL + time.Second)
	rl.cleanup()
	if len(rl.visitors) != 0 {
		t.Fatalf("stale visitors not removed: %d", len(rl.visitors))
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(1, time.Hour).Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != want {
			t.Fatalf("request %d: want %d, got %d", i, want, w.Code)
		}
	}
}

func TestBrotli_CompressesLargeBodies(t *testing.T) {
	body := strings.Repeat("kinderbook ", 200)

	r := gin.New()
	r.Use(Brotli())
	r.GET("/big", func(c *gin.Context) { c.String(http.StatusOK, body) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "tiny") })

	req := httptest.NewRequest(http.MethodGet, "/big", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("expected brotli encoding, got %q", w.Header().Get("Content-Encoding"))
	}
	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(plain) != body {
		t.Fatalf("round trip mismatch")
	}

	req = httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "" || w.Body.String() != "tiny" {
		t.Fatalf("small body should pass through, got %q", w.Body.String())
	}
}

func TestNoStore(t *testing.T) {
	r := gin.New()
	r.Use(NoStore())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control: got %q", got)
	}
}
