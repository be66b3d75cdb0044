package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"service-booking/internal/data/entity"
	"service-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DirectBookingRepository holds the short-lived item list of a "Book Now"
// action. While present it replaces the standing cart for checkout.
type DirectBookingRepository interface {
	Save(ctx context.Context, ownerID uuid.UUID, items []entity.LineItem) error
	Find(ctx context.Context, ownerID uuid.UUID) ([]entity.LineItem, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

type directBookingRepository struct {
	kv  database.KV
	ttl time.Duration
	log *zap.Logger
}

func NewDirectBookingRepository(kv database.KV, ttl time.Duration, log *zap.Logger) DirectBookingRepository {
	return &directBookingRepository{
		kv:  kv,
		ttl: ttl,
		log: log.With(zap.String("repository", "direct_booking")),
	}
}

func directBookingKey(ownerID uuid.UUID) string {
	return "direct_booking:" + ownerID.String()
}

func (r *directBookingRepository) Save(ctx context.Context, ownerID uuid.UUID, items []entity.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal direct booking: %w", err)
	}

	if err := r.kv.Set(ctx, directBookingKey(ownerID), data, r.ttl); err != nil {
		r.log.Error("Failed to save direct booking",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return fmt.Errorf("save direct booking: %w", err)
	}

	return nil
}

// Find returns nil when no direct list is held for the owner.
func (r *directBookingRepository) Find(ctx context.Context, ownerID uuid.UUID) ([]entity.LineItem, error) {
	data, err := r.kv.Get(ctx, directBookingKey(ownerID))
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find direct booking",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find direct booking: %w", err)
	}

	var items []entity.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode direct booking: %w", err)
	}

	return items, nil
}

func (r *directBookingRepository) Clear(ctx context.Context, ownerID uuid.UUID) error {
	if err := r.kv.Del(ctx, directBookingKey(ownerID)); err != nil {
		return fmt.Errorf("clear direct booking: %w", err)
	}
	return nil
}
