package apikeys

import (
	"context"

	"tinytoken-dashboard/internal/domain/keys"
)

// KeyService is the slice of the TinyToken key service these handlers use.
type KeyService interface {
	CreateKey(ctx context.Context, email, description string) (*keys.CreatedKey, error)
	ListKeys(ctx context.Context) ([]keys.Key, error)
	Deactivate(ctx context.Context, fullKey string) error
}

// EntitlementChecker answers whether an email holds an active subscription.
type EntitlementChecker interface {
	HasActiveSubscription(email string) bool
}

type Handler struct {
	keys        KeyService
	entitlement EntitlementChecker
}

func NewHandler(keys KeyService, entitlement EntitlementChecker) *Handler {
	return &Handler{keys: keys, entitlement: entitlement}
}
