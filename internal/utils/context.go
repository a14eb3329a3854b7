package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"
const ContextWardIDKey contextKey = "wardID"

type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

// GetWardIDFromContext returns the ward id placed in the context by the
// wearable device-code middleware.
func GetWardIDFromContext(ctx context.Context) (string, bool) {
	wardID := ctx.Value(ContextWardIDKey)
	wardIDStr, ok := wardID.(string)
	return wardIDStr, ok
}

func GenerateUUID() string {
	return uuid.NewString()
}
