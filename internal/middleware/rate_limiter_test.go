package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_Check(t *testing.T) {
	limiter := NewRateLimiter()

	if r := limiter.Check("k", time.Minute); !r.Allowed {
		t.Fatal("first call should be allowed")
	}
	r := limiter.Check("k", time.Minute)
	if r.Allowed {
		t.Fatal("second call within interval should be blocked")
	}
	if r.RetryAfter <= 0 || r.RetryAfter > time.Minute {
		t.Errorf("unexpected RetryAfter %v", r.RetryAfter)
	}

	// 不同 key 互不影响
	if r := limiter.Check("other", time.Minute); !r.Allowed {
		t.Error("different key should be allowed")
	}

	limiter.Reset("k")
	if r := limiter.Check("k", time.Minute); !r.Allowed {
		t.Error("call after reset should be allowed")
	}
}

func TestSignInThrottle_Allow(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     []bool
	}{
		{"disabled", 0, []bool{true, true, true}},
		{"enabled", time.Minute, []bool{true, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			throttle := NewSignInThrottle(NewRateLimiter(), tt.interval)
			for i, want := range tt.want {
				if got := throttle.Allow("lawyer01"); got != want {
					t.Errorf("attempt %d: Allow() = %v, want %v", i, got, want)
				}
			}
		})
	}

	var nilThrottle *SignInThrottle
	if !nilThrottle.Allow("x") {
		t.Error("nil throttle should allow")
	}
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/auths", RateLimitByIP(NewRateLimiter(), "signup", time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/auths", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}
