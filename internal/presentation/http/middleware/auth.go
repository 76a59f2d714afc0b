package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SunnFlower47/kasir-print-service/internal/config"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/dto/response"
)

// ClientIDKey is the context key under which the authenticated caller's
// identity is stored. Token issuance belongs to the auth collaborator; this
// service only verifies.
const ClientIDKey = "client_id"

// AuthMiddleware verifies the bearer token on incoming requests. When auth is
// disabled (local development, kiosk builds) the client falls back to its IP
// for rate limiting and idempotency scoping.
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Set(ClientIDKey, c.ClientIP())
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		clientID, _ := claims.GetSubject()
		if clientID == "" {
			clientID = c.ClientIP()
		}
		c.Set(ClientIDKey, clientID)

		c.Next()
	}
}

// GetClientID extracts the caller identity set by AuthMiddleware.
func GetClientID(c *gin.Context) string {
	v, exists := c.Get(ClientIDKey)
	if !exists {
		return ""
	}
	id, _ := v.(string)
	return id
}
