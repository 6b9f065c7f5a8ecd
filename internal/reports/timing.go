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
	"fmt"
	"math"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// secondsPerYear is the nominal year length used by the rate-based
// approximation (365 days).
const secondsPerYear = 365 * 24 * 60 * 60

// HMS is a duration decomposed into whole hours, whole remaining minutes,
// and whole remaining seconds. Each step uses floor division; nothing is
// rounded up.
type HMS struct {
	Hours   int64
	Minutes int64
	Seconds int64
}

// SplitSeconds decomposes a duration in seconds into HMS.
func SplitSeconds(seconds float64) HMS {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return HMS{}
	}
	total := int64(seconds)
	return HMS{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// String renders the duration in the warehouse's report format.
func (d HMS) String() string {
	return fmt.Sprintf("%d hours, %d minutes, %d seconds", d.Hours, d.Minutes, d.Seconds)
}

// YearlyInterval is one row of the sales-frequency reports.
type YearlyInterval struct {
	Year       int
	AvgSeconds float64
	AvgGap     HMS
}

// SalesGapByYear computes, for each year, the average time between
// consecutive sales: sale timestamps are ordered chronologically within
// the year and the gap to the next sale is averaged. The last sale of a
// year has no following event and contributes no gap; years with a
// single sale are excluded entirely. Years order by average gap,
// longest first.
func SalesGapByYear(ctx context.Context, db DB) ([]YearlyInterval, error) {
	rows, err := db.Query(ctx, `
        WITH gaps AS (
            SELECT dt.year,
                   EXTRACT(EPOCH FROM (
                       LEAD(dt."timestamp") OVER (PARTITION BY dt.year ORDER BY dt."timestamp")
                       - dt."timestamp"
                   ))::float8 AS gap_seconds
            FROM orders_table o
            JOIN dim_date_times dt ON o.date_uuid = dt.date_uuid
        )
        SELECT year, AVG(gap_seconds)::float8 AS avg_gap_seconds
        FROM gaps
        WHERE gap_seconds IS NOT NULL
        GROUP BY year
        ORDER BY avg_gap_seconds DESC, year
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// SalesRateByYear approximates the average time between sales as the
// nominal seconds in a year divided by that year's sale count. The
// configured outlier years are excluded before aggregation. Only the
// five years with the longest average are returned.
//
// The gap-based and rate-based figures are not equivalent: the rate
// variant assumes sales spread across the whole year, so a year whose
// sales cluster in one month reads very differently under each. Both
// are kept as distinct reports; callers choose.
func SalesRateByYear(ctx context.Context, db DB, excludedYears []int) ([]YearlyInterval, error) {
	excluded := make([]int32, 0, len(excludedYears))
	for _, y := range excludedYears {
		excluded = append(excluded, int32(y))
	}

	rows, err := db.Query(ctx, `
        SELECT dt.year,
               ($1::float8 / COUNT(*))::float8 AS avg_gap_seconds
        FROM orders_table o
        JOIN dim_date_times dt ON o.date_uuid = dt.date_uuid
        WHERE NOT (dt.year = ANY($2::int[]))
        GROUP BY dt.year
        ORDER BY avg_gap_seconds DESC, dt.year
        LIMIT 5
    `, float64(secondsPerYear), excluded)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIntervals(rows)
}

func scanIntervals(rows pgx.Rows) ([]YearlyInterval, error) {
	var out []YearlyInterval
	for rows.Next() {
		var r YearlyInterval
		if err := rows.Scan(&r.Year, &r.AvgSeconds); err != nil {
			return nil, err
		}
		r.AvgGap = SplitSeconds(r.AvgSeconds)
		out = append(out, r)
	}
	return out, rows.Err()
}

func runSalesGapByYear(ctx context.Context, db DB, _ Options) (*Result, error) {
	data, err := SalesGapByYear(ctx, db)
	if err != nil {
		return nil, err
	}
	return intervalResult(data), nil
}

func runSalesRateByYear(ctx context.Context, db DB, opts Options) (*Result, error) {
	data, err := SalesRateByYear(ctx, db, opts.ExcludedYears)
	if err != nil {
		return nil, err
	}
	return intervalResult(data), nil
}

func intervalResult(data []YearlyInterval) *Result {
	res := &Result{Columns: []string{"year", "actual_time_taken"}}
	for _, r := range data {
		res.Rows = append(res.Rows, []string{strconv.Itoa(r.Year), r.AvgGap.String()})
	}
	return res
}
