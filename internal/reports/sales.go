//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"strconv"
)

// germanyCountryCode filters the per-store-type sales report. Germany is
// the only market reported at store-type granularity.
const germanyCountryCode = "DE"

// Channel labels for the web/offline partition.
const (
	ChannelWeb     = "Web"
	ChannelOffline = "Offline"
)

// MonthlySales is one row of the sales-by-month report.
type MonthlySales struct {
	Month      int
	TotalSales float64
}

// SalesByMonth returns the six months with the highest total sales value
// across all years. Line-item value is price times quantity, rounded to
// two decimal places after summing.
func SalesByMonth(ctx context.Context, db DB) ([]MonthlySales, error) {
	rows, err := db.Query(ctx, `
        SELECT dt.month,
               ROUND(SUM(p.product_price_pounds * o.product_quantity)::numeric, 2)::float8 AS total_sales
        FROM orders_table o
        JOIN dim_date_times dt ON o.date_uuid = dt.date_uuid
        JOIN dim_products p ON o.product_code = p.product_code
        GROUP BY dt.month
        ORDER BY total_sales DESC, dt.month
        LIMIT 6
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlySales
	for rows.Next() {
		var r MonthlySales
		if err := rows.Scan(&r.Month, &r.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ChannelSales is one row of the web/offline comparison.
type ChannelSales struct {
	Channel  string
	Orders   int64
	Quantity int64
}

// SalesByChannel partitions the fact table into the web channel (orders
// carrying the configured web store code) and everything else. The
// result always holds exactly two rows, Web first, zero-filled when a
// channel has no sales.
func SalesByChannel(ctx context.Context, db DB, webStoreCode string) ([]ChannelSales, error) {
	rows, err := db.Query(ctx, `
        SELECT CASE WHEN o.store_code = $1 THEN 'Web' ELSE 'Offline' END AS location,
               COUNT(*) AS numbers_of_sales,
               SUM(o.product_quantity) AS product_quantity_count
        FROM orders_table o
        GROUP BY location
    `, webStoreCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []ChannelSales
	for rows.Next() {
		var r ChannelSales
		if err := rows.Scan(&r.Channel, &r.Orders, &r.Quantity); err != nil {
			return nil, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fillChannels(found), nil
}

// fillChannels orders the partition rows Web then Offline, inserting
// zero rows for channels absent from the snapshot.
func fillChannels(found []ChannelSales) []ChannelSales {
	out := []ChannelSales{
		{Channel: ChannelWeb},
		{Channel: ChannelOffline},
	}
	for _, r := range found {
		for i := range out {
			if out[i].Channel == r.Channel {
				out[i] = r
			}
		}
	}
	return out
}

// StoreTypeShare is one row of the sales-share report.
type StoreTypeShare struct {
	StoreType  string
	TotalSales float64
	Percentage float64
}

// SalesShareByStoreType computes each store type's share of total sales.
// The grand total is computed once and shared across groups. A zero
// grand total yields 0.00 shares rather than a division error.
func SalesShareByStoreType(ctx context.Context, db DB) ([]StoreTypeShare, error) {
	rows, err := db.Query(ctx, `
        WITH per_type AS (
            SELECT s.store_type,
                   SUM(p.product_price_pounds * o.product_quantity) AS sales
            FROM orders_table o
            JOIN dim_store_details s ON o.store_code = s.store_code
            JOIN dim_products p ON o.product_code = p.product_code
            GROUP BY s.store_type
        )
        SELECT store_type,
               ROUND(sales::numeric, 2)::float8 AS total_sales,
               ROUND(COALESCE(sales * 100 / NULLIF((SELECT SUM(sales) FROM per_type), 0), 0)::numeric, 2)::float8 AS percentage_total
        FROM per_type
        ORDER BY total_sales DESC, store_type
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoreTypeShare
	for rows.Next() {
		var r StoreTypeShare
		if err := rows.Scan(&r.StoreType, &r.TotalSales, &r.Percentage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// YearMonthSales is one row of the sales-by-year-and-month report.
type YearMonthSales struct {
	Year       int
	Month      int
	TotalSales float64
}

// SalesByYearMonth returns the ten year/month pairs with the highest
// total sales value.
func SalesByYearMonth(ctx context.Context, db DB) ([]YearMonthSales, error) {
	rows, err := db.Query(ctx, `
        SELECT dt.year, dt.month,
               ROUND(SUM(p.product_price_pounds * o.product_quantity)::numeric, 2)::float8 AS total_sales
        FROM orders_table o
        JOIN dim_date_times dt ON o.date_uuid = dt.date_uuid
        JOIN dim_products p ON o.product_code = p.product_code
        GROUP BY dt.year, dt.month
        ORDER BY total_sales DESC, dt.year, dt.month
        LIMIT 10
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []YearMonthSales
	for rows.Next() {
		var r YearMonthSales
		if err := rows.Scan(&r.Year, &r.Month, &r.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StoreTypeSales is one row of the German sales report.
type StoreTypeSales struct {
	StoreType  string
	TotalSales float64
}

// GermanSalesByStoreType totals sales per store type in Germany, ordered
// ascending by total.
func GermanSalesByStoreType(ctx context.Context, db DB) ([]StoreTypeSales, error) {
	rows, err := db.Query(ctx, `
        SELECT s.store_type,
               ROUND(SUM(p.product_price_pounds * o.product_quantity)::numeric, 2)::float8 AS total_sales
        FROM orders_table o
        JOIN dim_store_details s ON o.store_code = s.store_code
        JOIN dim_products p ON o.product_code = p.product_code
        WHERE s.country_code = $1
        GROUP BY s.store_type
        ORDER BY total_sales ASC, s.store_type
    `, germanyCountryCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoreTypeSales
	for rows.Next() {
		var r StoreTypeSales
		if err := rows.Scan(&r.StoreType, &r.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func runSalesByMonth(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := SalesByMonth(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"month", "total_sales"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{strconv.Itoa(r.Month), money(r.TotalSales)})
	}
	return res, nil
}

func runSalesByChannel(ctx context.Context, db DB, opts Options) (*Result, error) {
	data, err := SalesByChannel(ctx, db, opts.WebStoreCode)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"location", "numbers_of_sales", "product_quantity_count"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{
			r.Channel,
			strconv.FormatInt(r.Orders, 10),
			strconv.FormatInt(r.Quantity, 10),
		})
	}
	return res, nil
}

func runSalesShareByStoreType(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := SalesShareByStoreType(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"store_type", "total_sales", "percentage_total"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{r.StoreType, money(r.TotalSales), money(r.Percentage)})
	}
	return res, nil
}

func runSalesByYearMonth(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := SalesByYearMonth(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"year", "month", "total_sales"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			money(r.TotalSales),
		})
	}
	return res, nil
}

func runGermanSalesByStoreType(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := GermanSalesByStoreType(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"store_type", "total_sales"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{r.StoreType, money(r.TotalSales)})
	}
	return res, nil
}
