package database

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	token UUID UNIQUE NOT NULL,
	user_agent TEXT,
	ip_address TEXT,
	expires_at TIMESTAMPTZ NOT NULL,
	revoked_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS addresses (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	line1 TEXT NOT NULL,
	line2 TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL,
	state TEXT NOT NULL DEFAULT '',
	postal_code TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS cart_items (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	service_id TEXT NOT NULL,
	service_name TEXT NOT NULL,
	package_name TEXT NOT NULL DEFAULT '',
	unit_price BIGINT NOT NULL CHECK (unit_price >= 0),
	quantity INT NOT NULL CHECK (quantity >= 1),
	booking_cost BIGINT NOT NULL DEFAULT 0,
	inspection_cost BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token);
CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id);
CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id, created_at);
`

// Migrate creates the tables owned by this service if they do not exist.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
