//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrdc/salesdwh/internal/logging"
)

// ForeignKey describes one referential-integrity constraint binding the
// orders fact table to a dimension.
type ForeignKey struct {
	// Name is the constraint name in pg_constraint.
	Name string

	// Column is the referencing column on orders_table.
	Column string

	// RefTable is the referenced dimension table.
	RefTable string

	// RefColumn is the referenced primary-key column.
	RefColumn string
}

// ForeignKeys are the five constraints attached to orders_table. Deletes
// of referenced dimension rows are rejected (RESTRICT), never cascaded.
var ForeignKeys = []ForeignKey{
	{Name: "fk_orders_date_uuid", Column: "date_uuid", RefTable: "dim_date_times", RefColumn: "date_uuid"},
	{Name: "fk_orders_user_uuid", Column: "user_uuid", RefTable: "dim_users", RefColumn: "user_uuid"},
	{Name: "fk_orders_card_number", Column: "card_number", RefTable: "dim_card_details", RefColumn: "card_number"},
	{Name: "fk_orders_store_code", Column: "store_code", RefTable: "dim_store_details", RefColumn: "store_code"},
	{Name: "fk_orders_product_code", Column: "product_code", RefTable: "dim_products", RefColumn: "product_code"},
}

func (fk ForeignKey) addSQL() string {
	return fmt.Sprintf(
		"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE RESTRICT ON UPDATE RESTRICT",
		FactTable, fk.Name, fk.Column, fk.RefTable, fk.RefColumn)
}

// ApplyConstraints attaches the five foreign-key constraints to the fact
// table. Constraints already present are skipped, so reapplying is safe.
// Existing fact rows with dangling keys cause the corresponding ALTER
// TABLE to fail with an integrity violation naming the offending key.
func ApplyConstraints(ctx context.Context, pool *pgxpool.Pool) error {
	for _, fk := range ForeignKeys {
		exists, err := ConstraintExists(ctx, pool, fk.Name)
		if err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", fk.Name, err)
		}
		if exists {
			logging.Debug().
				Str("constraint", fk.Name).
				Msg("Constraint already present")
			continue
		}

		if _, err := pool.Exec(ctx, fk.addSQL()); err != nil {
			return fmt.Errorf("failed to add constraint %s: %w", fk.Name, err)
		}

		logging.Info().
			Str("constraint", fk.Name).
			Str("column", fk.Column).
			Str("references", fk.RefTable).
			Msg("Applied foreign key")
	}
	return nil
}

// DropConstraints removes the foreign keys from the fact table.
func DropConstraints(ctx context.Context, pool *pgxpool.Pool) error {
	for _, fk := range ForeignKeys {
		sql := fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s", FactTable, fk.Name)
		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("failed to drop constraint %s: %w", fk.Name, err)
		}
	}
	return nil
}

// ConstraintExists reports whether a named constraint is attached to the
// fact table.
func ConstraintExists(ctx context.Context, pool *pgxpool.Pool, name string) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM pg_constraint c
            JOIN pg_class t ON c.conrelid = t.oid
            WHERE c.conname = $1 AND t.relname = $2
        )
    `, name, FactTable).Scan(&exists)
	return exists, err
}

// PostgreSQL error code for foreign-key violations.
const foreignKeyViolationCode = "23503"

// IsIntegrityViolation reports whether err is a referential-integrity
// failure: a fact write with a dangling key, or a delete of a dimension
// row that fact rows still reference.
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// ViolatedConstraint returns the name of the constraint an integrity
// violation tripped, or "" if err is not an integrity violation. The name
// gives callers enough context to diagnose the offending upstream data.
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		return pgErr.ConstraintName
	}
	return ""
}
