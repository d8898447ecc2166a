package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opticadev/optica-api/internal/presentation/http/dto/response"
	"github.com/opticadev/optica-api/pkg/token"
)

const (
	contextActorIDKey = "actor_id"
	contextStoreIDKey = "actor_store_id"
	contextRoleKey    = "actor_role"
)

// AuthMiddleware validates the bearer token and places the acting staff
// member's identity and store on the request context.
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(contextActorIDKey, claims.ActorID)
		c.Set(contextStoreIDKey, claims.StoreID)
		c.Set(contextRoleKey, claims.Role)

		c.Next()
	}
}

// GetActorID returns the authenticated actor's ID, or uuid.Nil when the
// request is unauthenticated.
func GetActorID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextActorIDKey)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetActorStoreID returns the store the authenticated actor operates for,
// or uuid.Nil when the request is unauthenticated.
func GetActorStoreID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextStoreIDKey)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
