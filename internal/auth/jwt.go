package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abhishek622/mockmate/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrNotConfigured       = errors.New("auth provider not configured")
	ErrProviderUnavailable = errors.New("auth provider unavailable")
)

// Verifier turns a bearer token into the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier prefers local HS256 verification and falls back to asking the
// provider's user endpoint when only the project URL and anon key are known.
func NewVerifier(cfg config.AuthConfig) Verifier {
	switch {
	case cfg.JWTSecret != "":
		return NewJWTVerifier(cfg.JWTSecret)
	case cfg.URL != "" && cfg.AnonKey != "":
		return NewRemoteVerifier(cfg.URL, cfg.AnonKey)
	default:
		return denyAll{}
	}
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims.Identity()
}

// GenerateToken signs a provider-compatible access token. Used by tests and
// the CLI to mint development tokens.
func GenerateToken(secret string, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	claims, err := NewUserClaims(userID, email, ttl)
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

type RemoteVerifier struct {
	base    string
	anonKey string
	http    *http.Client
}

func NewRemoteVerifier(baseURL, anonKey string) *RemoteVerifier {
	return &RemoteVerifier{
		base:    strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, v.base+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	r.Header.Set("apikey", v.anonKey)
	r.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.http.Do(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: provider returned %d", ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: provider returned %d", ErrInvalidToken, resp.StatusCode)
	}

	var u remoteUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("%w: decode auth user: %v", ErrProviderUnavailable, err)
	}
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", ErrInvalidToken)
	}
	return &Identity{UserID: id, Email: u.Email}, nil
}

type denyAll struct{}

func (denyAll) Verify(context.Context, string) (*Identity, error) {
	return nil, ErrNotConfigured
}
