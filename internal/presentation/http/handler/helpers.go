package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetActorID extracts the authenticated actor's ID from the Gin context
func GetActorID(c *gin.Context) *uuid.UUID {
	actorIDVal, exists := c.Get("actor_id")
	if !exists {
		return nil
	}
	actorID, ok := actorIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &actorID
}

// GetActorStoreID extracts the actor's store ID from the Gin context
func GetActorStoreID(c *gin.Context) *uuid.UUID {
	storeIDVal, exists := c.Get("actor_store_id")
	if !exists {
		return nil
	}
	storeID, ok := storeIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &storeID
}

// parseUUIDQuery parses an optional UUID query value; invalid values are
// ignored like any other malformed filter.
func parseUUIDQuery(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}

// parseDateQuery parses an optional YYYY-MM-DD query value
func parseDateQuery(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
