//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema owns the sales_data star schema: one orders fact table
// surrounded by five dimension tables, bound by foreign-key constraints.
package schema

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaVersion identifies the current shape of the sales_data schema.
const SchemaVersion = "1"

// Schema SQL for the sales_data star schema. Column types follow the
// warehouse's load-time type mappings.
const createSchemaSQL = `
-- Product Dimension
CREATE TABLE IF NOT EXISTS dim_products (
    product_code         VARCHAR(11) PRIMARY KEY,
    product_name         VARCHAR(255),
    product_price_pounds NUMERIC(10,2) NOT NULL CHECK (product_price_pounds >= 0),
    weight_kg            DOUBLE PRECISION,
    category             VARCHAR(255),
    ean                  VARCHAR(17),
    date_added           DATE,
    uuid                 UUID,
    still_available      BOOLEAN,
    weight_class         VARCHAR(14)
);

-- Store Dimension
CREATE TABLE IF NOT EXISTS dim_store_details (
    store_code    VARCHAR(12) PRIMARY KEY,
    address       TEXT,
    longitude     DOUBLE PRECISION,
    latitude      DOUBLE PRECISION,
    locality      VARCHAR(255),
    staff_numbers SMALLINT,
    opening_date  DATE,
    store_type    VARCHAR(255),
    country_code  VARCHAR(2),
    continent     VARCHAR(255)
);

-- User Dimension
CREATE TABLE IF NOT EXISTS dim_users (
    user_uuid     UUID PRIMARY KEY,
    first_name    VARCHAR(255),
    last_name     VARCHAR(255),
    date_of_birth DATE,
    company       VARCHAR(255),
    email_address VARCHAR(255),
    address       TEXT,
    country       VARCHAR(255),
    country_code  VARCHAR(255),
    phone_number  VARCHAR(50),
    join_date     DATE
);

-- Date/Time Dimension (one row per sale event)
CREATE TABLE IF NOT EXISTS dim_date_times (
    date_uuid   UUID PRIMARY KEY,
    "timestamp" TIMESTAMP NOT NULL,
    year        SMALLINT NOT NULL,
    month       SMALLINT NOT NULL,
    day         SMALLINT NOT NULL,
    time_period VARCHAR(10)
);

-- Card Dimension
CREATE TABLE IF NOT EXISTS dim_card_details (
    card_number            VARCHAR(19) PRIMARY KEY,
    expiry_date            VARCHAR(5),
    card_provider          VARCHAR(255),
    date_payment_confirmed DATE
);

-- Orders Fact (one row per sale line-item)
CREATE TABLE IF NOT EXISTS orders_table (
    order_id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    date_uuid        UUID NOT NULL,
    user_uuid        UUID NOT NULL,
    card_number      VARCHAR(19) NOT NULL,
    store_code       VARCHAR(12) NOT NULL,
    product_code     VARCHAR(11) NOT NULL,
    product_quantity SMALLINT NOT NULL CHECK (product_quantity >= 0)
);

-- Indexes on the fact table's foreign keys for analytical joins
CREATE INDEX IF NOT EXISTS idx_orders_date_uuid ON orders_table(date_uuid);
CREATE INDEX IF NOT EXISTS idx_orders_store_code ON orders_table(store_code);
CREATE INDEX IF NOT EXISTS idx_orders_product_code ON orders_table(product_code);

CREATE INDEX IF NOT EXISTS idx_store_details_country ON dim_store_details(country_code);
CREATE INDEX IF NOT EXISTS idx_date_times_year ON dim_date_times(year);
`

// Drop schema SQL
const dropSchemaSQL = `
DROP TABLE IF EXISTS orders_table CASCADE;
DROP TABLE IF EXISTS dim_card_details CASCADE;
DROP TABLE IF EXISTS dim_date_times CASCADE;
DROP TABLE IF EXISTS dim_users CASCADE;
DROP TABLE IF EXISTS dim_store_details CASCADE;
DROP TABLE IF EXISTS dim_products CASCADE;
`

// FactTable is the name of the orders fact table.
const FactTable = "orders_table"

// DimensionTables lists the dimension tables in dependency-free load order.
var DimensionTables = []string{
	"dim_products",
	"dim_store_details",
	"dim_users",
	"dim_date_times",
	"dim_card_details",
}

// TableNames returns all tables of the schema, dimensions first.
func TableNames() []string {
	return append(append([]string{}, DimensionTables...), FactTable)
}

// Create creates the sales_data tables. It is idempotent.
func Create(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// Drop drops the sales_data tables.
func Drop(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
