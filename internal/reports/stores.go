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

// minStoresPerLocality is the threshold for the locality report. The
// filter applies after aggregation: localities are counted first, then
// groups below the threshold are discarded.
const minStoresPerLocality = 10

// CountryStores is one row of the stores-by-country report.
type CountryStores struct {
	CountryCode string
	Stores      int64
}

// StoresByCountry counts stores per country. Ties order by country code
// so the output is stable across runs.
func StoresByCountry(ctx context.Context, db DB) ([]CountryStores, error) {
	rows, err := db.Query(ctx, `
        SELECT country_code, COUNT(*) AS total_no_stores
        FROM dim_store_details
        GROUP BY country_code
        ORDER BY total_no_stores DESC, country_code
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountryStores
	for rows.Next() {
		var r CountryStores
		if err := rows.Scan(&r.CountryCode, &r.Stores); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LocalityStores is one row of the stores-by-locality report.
type LocalityStores struct {
	Locality string
	Stores   int64
}

// StoresByLocality returns the localities holding at least ten stores,
// busiest first.
func StoresByLocality(ctx context.Context, db DB) ([]LocalityStores, error) {
	rows, err := db.Query(ctx, `
        SELECT locality, COUNT(*) AS total_no_stores
        FROM dim_store_details
        WHERE locality IS NOT NULL
        GROUP BY locality
        HAVING COUNT(*) >= $1
        ORDER BY total_no_stores DESC, locality
    `, minStoresPerLocality)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LocalityStores
	for rows.Next() {
		var r LocalityStores
		if err := rows.Scan(&r.Locality, &r.Stores); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountryStaff is one row of the staff-by-country report.
type CountryStaff struct {
	CountryCode string
	TotalStaff  int64
}

// StaffByCountry sums staff headcount per country, largest first.
func StaffByCountry(ctx context.Context, db DB) ([]CountryStaff, error) {
	rows, err := db.Query(ctx, `
        SELECT country_code, SUM(staff_numbers) AS total_staff_numbers
        FROM dim_store_details
        GROUP BY country_code
        ORDER BY total_staff_numbers DESC, country_code
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountryStaff
	for rows.Next() {
		var r CountryStaff
		if err := rows.Scan(&r.CountryCode, &r.TotalStaff); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func runStoresByCountry(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := StoresByCountry(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"country_code", "total_no_stores"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{r.CountryCode, strconv.FormatInt(r.Stores, 10)})
	}
	return res, nil
}

func runStoresByLocality(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := StoresByLocality(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"locality", "total_no_stores"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{r.Locality, strconv.FormatInt(r.Stores, 10)})
	}
	return res, nil
}

func runStaffByCountry(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := StaffByCountry(ctx, db)
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: []string{"country_code", "total_staff_numbers"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{r.CountryCode, strconv.FormatInt(r.TotalStaff, 10)})
	}
	return res, nil
}
