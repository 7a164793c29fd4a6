package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhishek622/mockmate/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestJWTVerifier_RoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(testSecret, userID, "ada@example.com", time.Hour)
	require.NoError(t, err)

	id, err := NewJWTVerifier(testSecret).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
	assert.Equal(t, "ada@example.com", id.Email)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	userID := uuid.New()

	expired, err := GenerateToken(testSecret, userID, "a@b.c", -time.Minute)
	require.NoError(t, err)

	otherSecret, err := GenerateToken("another-secret-that-is-long-enough-xx", userID, "a@b.c", time.Hour)
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	badSubject, err := noSubject.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
		{name: "garbage", token: "not-a-jwt"},
		{name: "missing subject", token: badSubject},
	}

	v := NewJWTVerifier(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			assert.Error(t, err)
		})
	}
}

func TestRemoteVerifier(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + userID.String() + `","email":"ada@example.com"}`))
	}))
	defer srv.Close()

	v := NewRemoteVerifier(srv.URL+"/", "anon")

	id, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrProviderUnavailable)
}

func TestRemoteVerifier_ProviderDown(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := NewRemoteVerifier(srv.URL, "anon").Verify(context.Background(), "good")
		assert.ErrorIs(t, err, ErrProviderUnavailable, status)
		assert.NotErrorIs(t, err, ErrInvalidToken, status)
		srv.Close()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	_, err := NewRemoteVerifier(srv.URL, "anon").Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestNewVerifier(t *testing.T) {
	assert.IsType(t, &JWTVerifier{}, NewVerifier(config.AuthConfig{JWTSecret: testSecret, URL: "http://x", AnonKey: "k"}))
	assert.IsType(t, &RemoteVerifier{}, NewVerifier(config.AuthConfig{URL: "http://x", AnonKey: "k"}))

	_, err := NewVerifier(config.AuthConfig{}).Verify(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
