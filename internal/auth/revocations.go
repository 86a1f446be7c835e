package auth

import (
	"context"
	"time"

	"mikombo-backend/internal/cache"
)

const revokedKeyPrefix = "revoked:"

type Revocations struct {
	store cache.Cache
}

func NewRevocations(store cache.Cache) *Revocations {
	return &Revocations{store: store}
}

func (r *Revocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.store.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found, err := r.store.Get(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false, err
	}
	return found, nil
}
