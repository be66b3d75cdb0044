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

// PendingBookingRepository is a single-slot store per owner that carries a
// booking across the redirect to the payment gateway.
//
// Load consumes the record: it is read and deleted in one step, so a duplicate
// return from the gateway observes nil instead of replaying the booking.
type PendingBookingRepository interface {
	Save(ctx context.Context, ownerID uuid.UUID, booking *entity.PendingBooking) error
	Load(ctx context.Context, ownerID uuid.UUID) (*entity.PendingBooking, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

type pendingBookingRepository struct {
	kv  database.KV
	ttl time.Duration
	log *zap.Logger
}

func NewPendingBookingRepository(kv database.KV, ttl time.Duration, log *zap.Logger) PendingBookingRepository {
	return &pendingBookingRepository{
		kv:  kv,
		ttl: ttl,
		log: log.With(zap.String("repository", "pending_booking")),
	}
}

func pendingBookingKey(ownerID uuid.UUID) string {
	return "pending_booking:" + ownerID.String()
}

// Save overwrites any earlier record; it returns only once the write is acknowledged.
func (r *pendingBookingRepository) Save(ctx context.Context, ownerID uuid.UUID, booking *entity.PendingBooking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal pending booking: %w", err)
	}

	if err := r.kv.Set(ctx, pendingBookingKey(ownerID), data, r.ttl); err != nil {
		r.log.Error("Failed to save pending booking",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
			zap.String("order_id", booking.OrderID),
		)
		return fmt.Errorf("save pending booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *pendingBookingRepository) Load(ctx context.Context, ownerID uuid.UUID) (*entity.PendingBooking, error) {
	data, err := r.kv.GetDel(ctx, pendingBookingKey(ownerID))
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load pending booking",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("load pending booking: %w", err)
	}

	var booking entity.PendingBooking
	if err := json.Unmarshal(data, &booking); err != nil {
		r.log.Warn("Discarding unreadable pending booking",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("decode pending booking: %w", err)
	}

	return &booking, nil
}

func (r *pendingBookingRepository) Clear(ctx context.Context, ownerID uuid.UUID) error {
	if err := r.kv.Del(ctx, pendingBookingKey(ownerID)); err != nil {
		return fmt.Errorf("clear pending booking: %w", err)
	}
	return nil
}
