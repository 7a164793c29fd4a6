package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/abhishek622/mockmate/internal/auth"
	"github.com/abhishek622/mockmate/internal/handler"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to an identity or aborts with 401.
func (app *application) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Unauthorized(c, err.Error())
			return
		}

		id, err := app.Verifier.Verify(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrProviderUnavailable):
			app.Logger.Sugar().Errorw("auth provider unavailable", "err", err)
			response.ServiceUnavailable(c, "authentication provider unavailable, please retry")
			return
		default:
			if !errors.Is(err, auth.ErrInvalidToken) {
				app.Logger.Sugar().Warnw("token verification failed", "err", err)
			}
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		handler.SetIdentity(c, id)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header is missing")
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return fields[1], nil
}

// rateLimitKey limits per authenticated user.
func rateLimitKey(c *gin.Context) string {
	if id, ok := handler.IdentityFromContext(c); ok {
		return id.UserID.String()
	}
	return ""
}

// CORSMiddleware allows the configured browser origins.
func (app *application) CORSMiddleware() gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, o := range app.Config.GetCORSOrigins() {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
