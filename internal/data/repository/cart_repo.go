package repository

import (
	"context"
	"fmt"

	"service-booking/internal/data/entity"
	"service-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartRepository is the standing cart shared with the catalog flows. Checkout
// only ever reads it and clears it after a confirmed booking.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	Create(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ClearByUserID(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT id, user_id, service_id, service_name, package_name,
		       unit_price, quantity, booking_cost, inspection_cost, created_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart items",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find cart items for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ServiceID,
			&item.ServiceName,
			&item.PackageName,
			&item.UnitPrice,
			&item.Quantity,
			&item.BookingCost,
			&item.InspectionCost,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, service_id, service_name, package_name,
		                        unit_price, quantity, booking_cost, inspection_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ServiceID,
		item.ServiceName,
		item.PackageName,
		item.UnitPrice,
		item.Quantity,
		item.BookingCost,
		item.InspectionCost,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("service_id", item.ServiceID),
		)
		return fmt.Errorf("create cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete cart item",
			zap.Error(err),
			zap.String("cart_item_id", id.String()),
		)
		return false, fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("clear cart for user %s: %w", userID.String(), err)
	}

	return nil
}
