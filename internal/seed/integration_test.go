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

// Integration tests for the data generator.
// Run with: go test -tags=integration ./internal/seed/...
// Requires PostgreSQL to be available.

package seed_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrdc/salesdwh/internal/schema"
	"github.com/mrdc/salesdwh/internal/seed"
	"github.com/mrdc/salesdwh/internal/testutil"
)

const testWebStoreCode = "WEB-1388012W"

func setupSchema(t *testing.T) *pgxpool.Pool {
	t.Helper()

	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr, "seed")
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

func tableCount(t *testing.T, pool *pgxpool.Pool, table string) int64 {
	t.Helper()
	var count int64
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("Count of %s failed: %v", table, err)
	}
	return count
}

func TestSeedProducesRequestedCounts(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	counts := seed.Counts{
		Products: 30,
		Stores:   15,
		Users:    40,
		Cards:    25,
		Orders:   200,
	}
	if err := seed.NewGenerator(42).Run(ctx, pool, counts, testWebStoreCode); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := map[string]int64{
		"dim_products":      30,
		"dim_store_details": 15,
		"dim_users":         40,
		"dim_card_details":  25,
		"dim_date_times":    200,
		"orders_table":      200,
	}
	for table, expected := range want {
		if got := tableCount(t, pool, table); got != expected {
			t.Errorf("Table %s has %d rows, want %d", table, got, expected)
		}
	}
}

func TestSeedCreatesWebStore(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	counts := seed.Counts{Products: 5, Stores: 3, Users: 5, Cards: 5, Orders: 20}
	if err := seed.NewGenerator(7).Run(ctx, pool, counts, testWebStoreCode); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var storeType string
	var locality *string
	err := pool.QueryRow(ctx, `
        SELECT store_type, locality FROM dim_store_details WHERE store_code = $1
    `, testWebStoreCode).Scan(&storeType, &locality)
	if err != nil {
		t.Fatalf("Web store row missing: %v", err)
	}
	if storeType != "Web Portal" {
		t.Errorf("Web store type = %q, want 'Web Portal'", storeType)
	}
	if locality != nil {
		t.Errorf("Web store locality = %q, want NULL", *locality)
	}
}

// Every generated fact row must resolve against its dimensions. The
// constraints enforce this at insert time; the anti-joins double-check
// that no fact column was left pointing nowhere.
func TestSeedReferentialIntegrity(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	counts := seed.Counts{Products: 10, Stores: 5, Users: 10, Cards: 10, Orders: 100}
	if err := seed.NewGenerator(99).Run(ctx, pool, counts, testWebStoreCode); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	antiJoins := map[string]string{
		"product_code": `
            SELECT COUNT(*) FROM orders_table o
            LEFT JOIN dim_products p ON o.product_code = p.product_code
            WHERE p.product_code IS NULL`,
		"store_code": `
            SELECT COUNT(*) FROM orders_table o
            LEFT JOIN dim_store_details s ON o.store_code = s.store_code
            WHERE s.store_code IS NULL`,
		"user_uuid": `
            SELECT COUNT(*) FROM orders_table o
            LEFT JOIN dim_users u ON o.user_uuid = u.user_uuid
            WHERE u.user_uuid IS NULL`,
		"card_number": `
            SELECT COUNT(*) FROM orders_table o
            LEFT JOIN dim_card_details c ON o.card_number = c.card_number
            WHERE c.card_number IS NULL`,
		"date_uuid": `
            SELECT COUNT(*) FROM orders_table o
            LEFT JOIN dim_date_times dt ON o.date_uuid = dt.date_uuid
            WHERE dt.date_uuid IS NULL`,
	}
	for column, query := range antiJoins {
		var orphans int64
		if err := pool.QueryRow(ctx, query).Scan(&orphans); err != nil {
			t.Fatalf("Anti-join on %s failed: %v", column, err)
		}
		if orphans != 0 {
			t.Errorf("Found %d orphaned fact rows on %s", orphans, column)
		}
	}
}

func TestSeedDateTimesOnePerOrder(t *testing.T) {
	pool := setupSchema(t)
	ctx := context.Background()

	counts := seed.Counts{Products: 5, Stores: 3, Users: 5, Cards: 5, Orders: 50}
	if err := seed.NewGenerator(5).Run(ctx, pool, counts, testWebStoreCode); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var unused int64
	err := pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM dim_date_times dt
        LEFT JOIN orders_table o ON dt.date_uuid = o.date_uuid
        WHERE o.date_uuid IS NULL
    `).Scan(&unused)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if unused != 0 {
		t.Errorf("Found %d date rows not tied to a sale", unused)
	}
}
