package repository

import (
	"service-booking/pkg/database"
	"service-booking/pkg/utils"

	"go.uber.org/zap"
)

type Repository struct {
	Session        SessionRepository
	Address        AddressRepository
	Cart           CartRepository
	PendingBooking PendingBookingRepository
	DirectBooking  DirectBookingRepository
	SubmitLock     SubmitLockRepository
}

func NewRepository(db database.PgxIface, kv database.KV, config utils.BookingConfig, log *zap.Logger) *Repository {
	return &Repository{
		Session:        NewSessionRepository(db, log),
		Address:        NewAddressRepository(db, log),
		Cart:           NewCartRepository(db, log),
		PendingBooking: NewPendingBookingRepository(kv, config.PendingBookingTTL, log),
		DirectBooking:  NewDirectBookingRepository(kv, config.DirectBookingTTL, log),
		SubmitLock:     NewSubmitLockRepository(kv, config.SubmitLockTTL, log),
	}
}
