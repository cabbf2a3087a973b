package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/community/shared/domain"
	jwt_internal "github.com/itchan-dev/community/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	user := &domain.User{Id: 1, Nickname: "alice"}
	token, err := jwtService.NewToken(*user)
	require.NoError(t, err)

	noNickname, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": 1, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	tests := []struct {
		name           string
		cookie         *http.Cookie
		header         string
		expectedStatus int
		expectedUser   *domain.User
	}{
		{
			name:           "Valid token in cookie",
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			expectedStatus: http.StatusOK,
			expectedUser:   user,
		},
		{
			name:           "Valid token in header",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectedUser:   user,
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			cookie:         &http.Cookie{Name: "accessToken", Value: "invalid_token"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token without nickname",
			header:         "Bearer " + noNickname,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			var got *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetUserFromContext(r)
				w.WriteHeader(http.StatusOK)
			})
			NewAuth(jwtService).NeedAuth()(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedUser, got)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	token, err := jwtService.NewToken(domain.User{Id: 2, Nickname: "bob"})
	require.NoError(t, err)

	var got *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r)
	})
	handler := NewAuth(jwtService).OptionalAuth()(next)

	req := httptest.NewRequest("GET", "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, got)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Nickname)
}
