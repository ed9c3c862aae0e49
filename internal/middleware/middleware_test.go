package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/templui/medtrack/internal/config"
	"github.com/templui/medtrack/internal/ctxkeys"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	got := strings.Join(order, ",")
	if got != "first,second,handler" {
		t.Errorf("order = %s", got)
	}
}

func TestCSRFProtection(t *testing.T) {
	var seen string
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != csrfCookieName {
		t.Fatalf("cookies = %v", cookies)
	}
	token := cookies[0].Value
	if seen != token {
		t.Errorf("context token = %q, cookie = %q", seen, token)
	}

	tests := []struct {
		name   string
		header string
		form   string
		want   int
	}{
		{"header", token, "", http.StatusOK},
		{"form field", "", "csrf_token=" + token, http.StatusOK},
		{"missing", "", "", http.StatusForbidden},
		{"wrong", strings.Repeat("x", len(token)), "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/medicines", strings.NewReader(tt.form))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
			if tt.header != "" {
				req.Header.Set(csrfHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.1.1.1") {
		t.Error("third request inside window should be limited")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("other client should not be limited")
	}

	now = now.Add(61 * time.Second)
	if !rl.Allow("1.1.1.1") {
		t.Error("request after window should pass")
	}

	now = now.Add(10 * time.Minute)
	rl.Cleanup()
	if len(rl.requests) != 0 {
		t.Errorf("cleanup left %d clients", len(rl.requests))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	h := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodPost, "/medicines", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")

	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d", rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	calls := 0
	h := RateLimit(0, time.Minute)(func(w http.ResponseWriter, r *http.Request) { calls++ })
	for range 5 {
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}
	if calls != 5 {
		t.Errorf("calls = %d", calls)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		trust   bool
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded trusted", true, map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "127.0.0.1:1", "10.0.0.1"},
		{"real ip trusted", true, map[string]string{"X-Real-IP": " 10.0.0.3 "}, "127.0.0.1:1", "10.0.0.3"},
		{"forwarded untrusted", false, map[string]string{"X-Forwarded-For": "10.0.0.1"}, "127.0.0.1:1", "127.0.0.1"},
		{"real ip untrusted", false, map[string]string{"X-Real-IP": "10.0.0.3"}, "127.0.0.1:1", "127.0.0.1"},
		{"remote addr", true, nil, "192.168.1.5:4242", "192.168.1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(ctxkeys.WithConfig(req.Context(), &config.Config{TrustProxy: tt.trust}))
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	h := Chain(http.HandlerFunc(rl.Middleware(func(w http.ResponseWriter, r *http.Request) {})),
		Config(&config.Config{TrustProxy: false}))

	codes := make([]int, 0, 3)
	for i := range 3 {
		req := httptest.NewRequest(http.MethodPost, "/medicines", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("statuses = %v, third request from the same peer should be limited", codes)
	}
}

func TestNonceAndSecurityHeaders(t *testing.T) {
	var templNonce string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templNonce = templ.GetNonce(r.Context())
	}), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if templNonce == "" {
		t.Fatal("no nonce in context")
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "'nonce-"+templNonce+"'") {
		t.Errorf("CSP %q does not carry nonce", csp)
	}
}
