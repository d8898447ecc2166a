package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ActorClaims identifies the staff member behind a request and the store
// they are operating for.
type ActorClaims struct {
	ActorID uuid.UUID `json:"actor_id"`
	StoreID uuid.UUID `json:"store_id"`
	Role    string    `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies actor tokens
type Manager struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewManager creates a new token manager
func NewManager(secret string, expiry time.Duration, issuer string) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed token for an actor
func (m *Manager) Generate(actorID, storeID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := ActorClaims{
		ActorID: actorID,
		StoreID: storeID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   actorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning its claims
func (m *Manager) Verify(tokenString string) (*ActorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ActorClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
