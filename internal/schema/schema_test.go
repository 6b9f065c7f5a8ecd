//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the sales_data schema.
// Run with: go test -tags=integration ./internal/schema/...
// Requires PostgreSQL to be available.
// Set SALESDWH_TEST_CONN environment variable to override connection string.

package schema_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrdc/salesdwh/internal/schema"
	"github.com/mrdc/salesdwh/internal/testutil"
)

func setupSchema(t *testing.T) *pgxpool.Pool {
	t.Helper()

	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr, "schema")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()
	if err := schema.Create(ctx, pool); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := schema.ApplyConstraints(ctx, pool); err != nil {
		t.Fatalf("ApplyConstraints failed: %v", err)
	}

	return pool
}

func TestCreateIsIdempotent(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	if err := schema.Create(ctx, pool); err != nil {
		t.Fatalf("Second Create failed: %v", err)
	}

	for _, table := range schema.TableNames() {
		var exists bool
		err := pool.QueryRow(ctx, `
            SELECT EXISTS (
                SELECT FROM information_schema.tables WHERE table_name = $1
            )
        `, table).Scan(&exists)
		if err != nil {
			t.Fatalf("Failed to check table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("Table %s does not exist", table)
		}
	}
}

func TestApplyConstraintsIsIdempotent(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	if err := schema.ApplyConstraints(ctx, pool); err != nil {
		t.Fatalf("Second ApplyConstraints failed: %v", err)
	}

	for _, fk := range schema.ForeignKeys {
		exists, err := schema.ConstraintExists(ctx, pool, fk.Name)
		if err != nil {
			t.Fatalf("ConstraintExists(%s) failed: %v", fk.Name, err)
		}
		if !exists {
			t.Errorf("Constraint %s not attached to %s", fk.Name, schema.FactTable)
		}
	}
}

func insertDimensions(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	statements := []string{
		`INSERT INTO dim_products (product_code, product_name, product_price_pounds)
         VALUES ('P1-0000001A', 'Test Product', 10.00)`,
		`INSERT INTO dim_store_details (store_code, locality, staff_numbers, store_type, country_code)
         VALUES ('ST-0000001A', 'Testtown', 5, 'Local', 'DE')`,
		`INSERT INTO dim_users (user_uuid) VALUES ('11111111-1111-1111-1111-111111111111')`,
		`INSERT INTO dim_date_times (date_uuid, "timestamp", year, month, day)
         VALUES ('22222222-2222-2222-2222-222222222222', '2021-06-01 10:00:00', 2021, 6, 1)`,
		`INSERT INTO dim_card_details (card_number) VALUES ('4000000000000001')`,
	}
	for _, sql := range statements {
		if _, err := pool.Exec(ctx, sql); err != nil {
			t.Fatalf("Fixture insert failed: %v", err)
		}
	}
}

func TestValidFactRowAccepted(t *testing.T) {
	pool := setupSchema(t)
	insertDimensions(t, pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
        INSERT INTO orders_table (date_uuid, user_uuid, card_number, store_code, product_code, product_quantity)
        VALUES ('22222222-2222-2222-2222-222222222222', '11111111-1111-1111-1111-111111111111',
                '4000000000000001', 'ST-0000001A', 'P1-0000001A', 2)
    `)
	if err != nil {
		t.Fatalf("Valid fact row rejected: %v", err)
	}
}

func TestDanglingKeyRejected(t *testing.T) {
	pool := setupSchema(t)
	insertDimensions(t, pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
        INSERT INTO orders_table (date_uuid, user_uuid, card_number, store_code, product_code, product_quantity)
        VALUES ('22222222-2222-2222-2222-222222222222', '11111111-1111-1111-1111-111111111111',
                '4000000000000001', 'ST-0000001A', 'XX-9999999Z', 2)
    `)
	if err == nil {
		t.Fatal("Expected integrity violation for dangling product_code")
	}
	if !schema.IsIntegrityViolation(err) {
		t.Errorf("Expected integrity violation, got: %v", err)
	}
	if name := schema.ViolatedConstraint(err); name != "fk_orders_product_code" {
		t.Errorf("Expected fk_orders_product_code, got %q", name)
	}

	// No partial row committed
	var count int64
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders_table").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty fact table after rejected insert, found %d rows", count)
	}
}

func TestReferencedDimensionDeleteRestricted(t *testing.T) {
	pool := setupSchema(t)
	insertDimensions(t, pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
        INSERT INTO orders_table (date_uuid, user_uuid, card_number, store_code, product_code, product_quantity)
        VALUES ('22222222-2222-2222-2222-222222222222', '11111111-1111-1111-1111-111111111111',
                '4000000000000001', 'ST-0000001A', 'P1-0000001A', 2)
    `)
	if err != nil {
		t.Fatalf("Fixture fact row rejected: %v", err)
	}

	_, err = pool.Exec(ctx, "DELETE FROM dim_products WHERE product_code = 'P1-0000001A'")
	if err == nil {
		t.Fatal("Expected delete of referenced dimension row to be rejected")
	}
	if !schema.IsIntegrityViolation(err) {
		t.Errorf("Expected integrity violation, got: %v", err)
	}

	// An unreferenced dimension row still deletes cleanly.
	_, err = pool.Exec(ctx, `
        INSERT INTO dim_products (product_code, product_price_pounds) VALUES ('P2-0000002B', 1.00)
    `)
	if err != nil {
		t.Fatalf("Insert of unreferenced product failed: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM dim_products WHERE product_code = 'P2-0000002B'"); err != nil {
		t.Errorf("Delete of unreferenced product should succeed: %v", err)
	}
}

func TestDropConstraintsAndSchema(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	if err := schema.DropConstraints(ctx, pool); err != nil {
		t.Fatalf("DropConstraints failed: %v", err)
	}
	for _, fk := range schema.ForeignKeys {
		exists, err := schema.ConstraintExists(ctx, pool, fk.Name)
		if err != nil {
			t.Fatalf("ConstraintExists(%s) failed: %v", fk.Name, err)
		}
		if exists {
			t.Errorf("Constraint %s still present after drop", fk.Name)
		}
	}

	if err := schema.Drop(ctx, pool); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables WHERE table_name = $1
        )
    `, schema.FactTable).Scan(&exists)
	if err != nil {
		t.Fatalf("Failed to check fact table: %v", err)
	}
	if exists {
		t.Error("Fact table still present after Drop")
	}
}

func TestIsIntegrityViolationOnOtherErrors(t *testing.T) {
	if schema.IsIntegrityViolation(nil) {
		t.Error("nil is not an integrity violation")
	}
	if schema.ViolatedConstraint(nil) != "" {
		t.Error("nil has no violated constraint")
	}
}
