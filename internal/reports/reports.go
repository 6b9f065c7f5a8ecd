//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reports implements the analytical reports of the sales_data
// warehouse. Every report is a read-only aggregation over the committed
// snapshot: no report mutates state, and re-running a report against an
// unchanged snapshot yields identical output.
package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is an interface that both *pgxpool.Pool and *pgx.Conn satisfy, so
// reports can run against a pool or a dedicated connection.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Options carries the business literals the report layer depends on.
// They are injected rather than embedded in query text so the channel
// rule and outlier exclusions stay auditable.
type Options struct {
	// WebStoreCode identifies the online sales channel. If no fact row
	// carries this code the channel report shows zero web sales; that is
	// an accepted limitation of the single-code channel rule, not an
	// error.
	WebStoreCode string

	// ExcludedYears are skipped by the rate-based sales-frequency
	// report.
	ExcludedYears []int
}

// DefaultOptions returns the warehouse's standing report options.
func DefaultOptions() Options {
	return Options{
		WebStoreCode: "WEB-1388012W",
	}
}

// Result is a rendered report: ordered rows under fixed columns.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Definition describes one named report.
type Definition struct {
	// Name is the report identifier.
	Name string

	// Description describes the business question the report answers.
	Description string

	// Run executes the report against the current snapshot.
	Run func(ctx context.Context, db DB, opts Options) (*Result, error)
}

// Definitions lists every report in its fixed warehouse order.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        "stores_by_country",
			Description: "Number of stores operated in each country",
			Run:         runStoresByCountry,
		},
		{
			Name:        "stores_by_locality",
			Description: "Localities with ten or more stores",
			Run:         runStoresByLocality,
		},
		{
			Name:        "sales_by_month",
			Description: "Six months with the highest total sales",
			Run:         runSalesByMonth,
		},
		{
			Name:        "sales_by_channel",
			Description: "Web versus offline order counts and quantities",
			Run:         runSalesByChannel,
		},
		{
			Name:        "sales_share_by_store_type",
			Description: "Percentage of total sales by store type",
			Run:         runSalesShareByStoreType,
		},
		{
			Name:        "sales_by_year_month",
			Description: "Ten year/month pairs with the highest total sales",
			Run:         runSalesByYearMonth,
		},
		{
			Name:        "staff_by_country",
			Description: "Total staff headcount per country",
			Run:         runStaffByCountry,
		},
		{
			Name:        "german_sales_by_store_type",
			Description: "Total sales by store type in Germany",
			Run:         runGermanSalesByStoreType,
		},
		{
			Name:        "sales_gap_by_year",
			Description: "Average time between consecutive sales per year (gap-based)",
			Run:         runSalesGapByYear,
		},
		{
			Name:        "sales_rate_by_year",
			Description: "Average time between sales per year (rate-based approximation)",
			Run:         runSalesRateByYear,
		},
	}
}

// Get retrieves a report definition by name.
func Get(name string) (Definition, error) {
	for _, def := range Definitions() {
		if def.Name == name {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown report: %s", name)
}

// Names returns the report names in their fixed order.
func Names() []string {
	defs := Definitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

// money renders a currency amount with exactly two decimal places.
func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
