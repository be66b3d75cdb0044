package repository

import (
	"context"
	"errors"
	"fmt"

	"service-booking/internal/data/entity"
	"service-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AddressRepository interface {
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Address, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
}

type addressRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddressRepository(db database.PgxIface, log *zap.Logger) AddressRepository {
	return &addressRepository{
		db:  db,
		log: log.With(zap.String("repository", "address")),
	}
}

const addressColumns = `id, user_id, label, line1, line2, city, state, postal_code,
		       latitude, longitude, created_at, updated_at`

func scanAddress(row pgx.Row) (*entity.Address, error) {
	var a entity.Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Label,
		&a.Line1,
		&a.Line2,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.Latitude,
		&a.Longitude,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	address, err := scanAddress(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find address",
			zap.Error(err),
			zap.String("address_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find address %s: %w", id.String(), err)
	}

	return address, nil
}

func (r *addressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list addresses", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []*entity.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}
