package repository

import (
	"context"
	"fmt"
	"time"

	"service-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitLockRepository guards against a second booking submit for the same
// owner while one is in flight. The TTL bounds a lock left by a crashed process.
type SubmitLockRepository interface {
	Acquire(ctx context.Context, ownerID uuid.UUID) (bool, error)
	Release(ctx context.Context, ownerID uuid.UUID) error
}

type submitLockRepository struct {
	kv  database.KV
	ttl time.Duration
	log *zap.Logger
}

func NewSubmitLockRepository(kv database.KV, ttl time.Duration, log *zap.Logger) SubmitLockRepository {
	return &submitLockRepository{
		kv:  kv,
		ttl: ttl,
		log: log.With(zap.String("repository", "submit_lock")),
	}
}

func submitLockKey(ownerID uuid.UUID) string {
	return "checkout_lock:" + ownerID.String()
}

func (r *submitLockRepository) Acquire(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	ok, err := r.kv.SetNX(ctx, submitLockKey(ownerID), []byte(time.Now().UTC().Format(time.RFC3339)), r.ttl)
	if err != nil {
		r.log.Error("Failed to acquire submit lock", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return false, fmt.Errorf("acquire submit lock: %w", err)
	}
	return ok, nil
}

func (r *submitLockRepository) Release(ctx context.Context, ownerID uuid.UUID) error {
	if err := r.kv.Del(ctx, submitLockKey(ownerID)); err != nil {
		r.log.Warn("Failed to release submit lock", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return fmt.Errorf("release submit lock: %w", err)
	}
	return nil
}
