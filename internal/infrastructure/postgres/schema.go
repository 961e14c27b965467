package postgres

import (
	"context"
	"fmt"
)

// schemaDDL esquema completo. Idempotente: se puede ejecutar en cada arranque.
// stock_qty >= 0 lo garantiza el CHECK además del UPDATE condicional del ledger.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL CHECK (role IN ('admin', 'staff')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (lower(username));
ALTER TABLE users ADD COLUMN IF NOT EXISTS password_hash TEXT NOT NULL DEFAULT '';

CREATE TABLE IF NOT EXISTS categories (
	id   UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS products (
	id          UUID PRIMARY KEY,
	sku         TEXT NOT NULL UNIQUE,
	barcode     TEXT UNIQUE,
	name        TEXT NOT NULL,
	category_id UUID REFERENCES categories (id),
	price       NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
	cost_price  NUMERIC(12, 2) NOT NULL CHECK (cost_price >= 0),
	gst_rate    NUMERIC(5, 2) NOT NULL DEFAULT 0 CHECK (gst_rate >= 0),
	unit        TEXT NOT NULL DEFAULT 'pcs',
	stock_qty   INTEGER NOT NULL DEFAULT 0 CHECK (stock_qty >= 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id                    UUID PRIMARY KEY,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	customer_id           UUID REFERENCES customers (id),
	staff_id              TEXT NOT NULL,
	order_discount_pct    NUMERIC(5, 2) NOT NULL DEFAULT 0 CHECK (order_discount_pct BETWEEN 0 AND 100),
	gross_subtotal        NUMERIC(12, 2) NOT NULL,
	order_discount_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
	subtotal              NUMERIC(12, 2) NOT NULL,
	tax_total             NUMERIC(12, 2) NOT NULL,
	grand_total           NUMERIC(12, 2) NOT NULL,
	profit_amount         NUMERIC(12, 2) NOT NULL,
	CHECK (grand_total = subtotal + tax_total)
);
CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC);

CREATE TABLE IF NOT EXISTS order_items (
	id           UUID PRIMARY KEY,
	order_id     UUID NOT NULL REFERENCES orders (id),
	position     INTEGER NOT NULL,
	product_id   UUID NOT NULL REFERENCES products (id),
	quantity     INTEGER NOT NULL CHECK (quantity > 0),
	unit_price   NUMERIC(12, 2) NOT NULL,
	unit_cost    NUMERIC(12, 2) NOT NULL,
	gst_rate     NUMERIC(5, 2) NOT NULL,
	discount_pct NUMERIC(5, 2) NOT NULL DEFAULT 0 CHECK (discount_pct BETWEEN 0 AND 100),
	UNIQUE (order_id, position)
);

CREATE TABLE IF NOT EXISTS inventory_logs (
	seq        BIGSERIAL UNIQUE,
	id         UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products (id),
	change_qty INTEGER NOT NULL CHECK (change_qty <> 0),
	reason     TEXT NOT NULL CHECK (reason IN ('refill', 'sale', 'adjustment')),
	staff_id   TEXT NOT NULL,
	order_id   UUID REFERENCES orders (id) DEFERRABLE INITIALLY DEFERRED,
	note       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS inventory_logs_product_idx ON inventory_logs (product_id, seq DESC);
CREATE INDEX IF NOT EXISTS inventory_logs_order_idx ON inventory_logs (order_id);
`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
