package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itchan-dev/community/shared/domain"
	"github.com/itchan-dev/community/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, r *http.Request) int {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr.Code
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserClaimsKey, user))
}

func TestRateLimit(t *testing.T) {
	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		assert.Equal(t, http.StatusOK, serve(handler, httptest.NewRequest("GET", "/", nil)))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "Rate limit exceeded, try again later\n", rr.Body.String())
	})

	t.Run("error getting identity", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "", errors.New("Test error") })(okHandler())

		assert.Equal(t, http.StatusInternalServerError, serve(handler, httptest.NewRequest("GET", "/", nil)))
	})

	t.Run("admins are not limited", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		assert.Equal(t, http.StatusOK, serve(handler, httptest.NewRequest("GET", "/", nil)))
		assert.Equal(t, http.StatusTooManyRequests, serve(handler, withUser(httptest.NewRequest("GET", "/", nil), &domain.User{Nickname: "alice"})))
		assert.Equal(t, http.StatusOK, serve(handler, withUser(httptest.NewRequest("GET", "/", nil), &domain.User{Nickname: "root", Admin: true})))
	})

	t.Run("limits per nickname", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, GetNicknameFromContext)(okHandler())

		alice := &domain.User{Nickname: "alice"}
		bob := &domain.User{Nickname: "bob"}
		assert.Equal(t, http.StatusOK, serve(handler, withUser(httptest.NewRequest("POST", "/", nil), alice)))
		assert.Equal(t, http.StatusOK, serve(handler, withUser(httptest.NewRequest("POST", "/", nil), bob)))
		assert.Equal(t, http.StatusTooManyRequests, serve(handler, withUser(httptest.NewRequest("POST", "/", nil), alice)))
	})
}

func TestGetNicknameFromContext(t *testing.T) {
	req := withUser(httptest.NewRequest("GET", "/", nil), &domain.User{Id: 123, Nickname: "alice"})
	id, err := GetNicknameFromContext(req)
	assert.NoError(t, err)
	assert.Equal(t, "user_alice", id)

	_, err = GetNicknameFromContext(httptest.NewRequest("GET", "/", nil))
	assert.EqualError(t, err, "Can't get user nickname")
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
		wantErr    bool
	}{
		{name: "ipv4 with port", remoteAddr: "192.168.1.100:54321", want: "192.168.1.100"},
		{name: "ipv6 with port", remoteAddr: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "no port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
		{
			name:       "forwarding headers ignored",
			remoteAddr: "203.0.113.50:12345",
			headers:    map[string]string{"X-Real-IP": "10.0.0.1", "X-Forwarded-For": "10.0.0.2, 10.0.0.3"},
			want:       "203.0.113.50",
		},
		{name: "invalid", remoteAddr: "not-an-ip:1234", wantErr: true},
		{name: "empty", remoteAddr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			ip, err := GetIP(req)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid IP address")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ip)
		})
	}
}
