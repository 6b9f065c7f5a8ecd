//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package seed populates the sales_data schema with generated test data.
// Dimensions load before facts so every foreign key resolves; the real
// warehouse receives cleaned data from the extraction pipeline instead.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrdc/salesdwh/internal/datagen"
	"github.com/mrdc/salesdwh/internal/logging"
)

// Counts sets how many rows to generate per table. Orders also controls
// dim_date_times, which holds one row per sale event.
type Counts struct {
	Products int
	Stores   int
	Users    int
	Cards    int
	Orders   int
}

// Reference data
var storeTypes = []string{"Local", "Super Store", "Mall Kiosk", "Outlet"}
var countryCodes = []string{"GB", "DE", "US"}
var cardProviders = []string{"VISA 16 digit", "Mastercard", "American Express", "Diners Club / Carte Blanche", "JCB 16 digit"}
var weightClasses = []string{"Light", "Mid_Sized", "Heavy", "Truck_Required"}

// Sale timestamps span these years so the time-bucketed reports have
// material across several buckets.
var (
	salesStart = time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)
	salesEnd   = time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC)
)

// Generator generates test data for the sales_data schema.
type Generator struct {
	faker *datagen.Faker
	cfg   datagen.BatchInsertConfig

	productCodes []string
	storeCodes   []string
	userUUIDs    []string
	cardNumbers  []string
	dateUUIDs    []string
}

// NewGenerator creates a generator. A non-zero randomSeed makes runs
// reproducible.
func NewGenerator(randomSeed uint64) *Generator {
	faker := datagen.NewFaker()
	if randomSeed != 0 {
		faker = datagen.NewFakerWithSeed(randomSeed)
	}
	return &Generator{
		faker: faker,
		cfg:   datagen.DefaultBatchConfig(),
	}
}

// Run populates all six tables. webStoreCode is guaranteed to exist in
// dim_store_details so the channel report has its online partition.
func (g *Generator) Run(ctx context.Context, pool *pgxpool.Pool, counts Counts, webStoreCode string) error {
	logging.Info().
		Int("products", counts.Products).
		Int("stores", counts.Stores).
		Int("users", counts.Users).
		Int("cards", counts.Cards).
		Int("orders", counts.Orders).
		Msg("Seeding warehouse")

	if err := g.generateProducts(ctx, pool, counts.Products); err != nil {
		return fmt.Errorf("failed to generate dim_products: %w", err)
	}
	if err := g.generateStores(ctx, pool, counts.Stores, webStoreCode); err != nil {
		return fmt.Errorf("failed to generate dim_store_details: %w", err)
	}
	if err := g.generateUsers(ctx, pool, counts.Users); err != nil {
		return fmt.Errorf("failed to generate dim_users: %w", err)
	}
	if err := g.generateCards(ctx, pool, counts.Cards); err != nil {
		return fmt.Errorf("failed to generate dim_card_details: %w", err)
	}
	if err := g.generateDateTimes(ctx, pool, counts.Orders); err != nil {
		return fmt.Errorf("failed to generate dim_date_times: %w", err)
	}
	if err := g.generateOrders(ctx, pool, counts.Orders); err != nil {
		return fmt.Errorf("failed to generate orders_table: %w", err)
	}

	logging.Info().Msg("Seed complete")
	return nil
}

func (g *Generator) generateProducts(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const columns = "(product_code, product_name, product_price_pounds, weight_kg, category, ean, date_added, uuid, still_available, weight_class)"
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("dim_products", int64(count), g.cfg.ProgressInterval)

	seen := make(map[string]bool, count)
	for len(g.productCodes) < count {
		code := g.faker.ProductCode()
		if seen[code] {
			continue
		}
		seen[code] = true
		g.productCodes = append(g.productCodes, code)

		batch = append(batch, fmt.Sprintf("(%s, %s, %.2f, %.3f, %s, %s, '%s', '%s', %t, %s)",
			datagen.Literal(code),
			datagen.Literal(g.faker.ProductName()),
			g.faker.Price(0.5, 250),
			g.faker.Float64(0.05, 120),
			datagen.Literal(g.faker.ProductCategory()),
			datagen.Literal(g.faker.Ean()),
			g.faker.DateRange(salesStart.AddDate(-2, 0, 0), salesStart).Format("2006-01-02"),
			g.faker.UUID(),
			g.faker.Bool(),
			datagen.Literal(datagen.Choose(g.faker, weightClasses)),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_products", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_products", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (g *Generator) generateStores(ctx context.Context, pool *pgxpool.Pool, count int, webStoreCode string) error {
	const columns = "(store_code, address, longitude, latitude, locality, staff_numbers, opening_date, store_type, country_code, continent)"
	batch := make([]string, 0, g.cfg.BatchSize)

	// The web store has no physical location.
	batch = append(batch, fmt.Sprintf("(%s, NULL, NULL, NULL, NULL, %d, '%s', 'Web Portal', 'GB', 'Europe')",
		datagen.Literal(webStoreCode),
		g.faker.Int(40, 400),
		g.faker.DateRange(salesStart.AddDate(-10, 0, 0), salesStart).Format("2006-01-02"),
	))
	g.storeCodes = append(g.storeCodes, webStoreCode)

	// Reuse a small pool of localities so the locality report's
	// post-aggregation threshold has groups that clear it.
	numLocalities := max(1, (count-1)/12)
	localities := make([]string, 0, numLocalities)
	for i := 0; i < numLocalities; i++ {
		localities = append(localities, g.faker.City())
	}

	seen := map[string]bool{webStoreCode: true}
	for len(g.storeCodes) < count {
		code := g.faker.StoreCode()
		if seen[code] {
			continue
		}
		seen[code] = true
		g.storeCodes = append(g.storeCodes, code)

		country := datagen.Choose(g.faker, countryCodes)
		continent := "Europe"
		if country == "US" {
			continent = "America"
		}

		batch = append(batch, fmt.Sprintf("(%s, %s, %.5f, %.5f, %s, %d, '%s', %s, %s, %s)",
			datagen.Literal(code),
			datagen.Literal(g.faker.Street()),
			g.faker.Float64(-10, 15),
			g.faker.Float64(45, 60),
			datagen.Literal(datagen.Choose(g.faker, localities)),
			g.faker.Int(3, 120),
			g.faker.DateRange(salesStart.AddDate(-20, 0, 0), salesStart).Format("2006-01-02"),
			datagen.Literal(datagen.Choose(g.faker, storeTypes)),
			datagen.Literal(country),
			datagen.Literal(continent),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_store_details", columns, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_store_details", columns, batch); err != nil {
		return err
	}
	logging.Info().Int("count", len(g.storeCodes)).Msg("dim_store_details complete")
	return nil
}

func (g *Generator) generateUsers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const columns = "(user_uuid, first_name, last_name, date_of_birth, company, email_address, address, country, country_code, phone_number, join_date)"
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("dim_users", int64(count), g.cfg.ProgressInterval)

	for i := 0; i < count; i++ {
		uuid := g.faker.UUID()
		g.userUUIDs = append(g.userUUIDs, uuid)

		country := datagen.Choose(g.faker, countryCodes)
		batch = append(batch, fmt.Sprintf("('%s', %s, %s, '%s', %s, %s, %s, %s, %s, %s, '%s')",
			uuid,
			datagen.Literal(g.faker.FirstName()),
			datagen.Literal(g.faker.LastName()),
			g.faker.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2004, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
			datagen.Literal(g.faker.Company()),
			datagen.Literal(g.faker.Email()),
			datagen.Literal(g.faker.Street()),
			datagen.Literal(countryName(country)),
			datagen.Literal(country),
			datagen.Literal(g.faker.Phone()),
			g.faker.DateRange(salesStart.AddDate(-5, 0, 0), salesEnd).Format("2006-01-02"),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_users", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_users", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (g *Generator) generateCards(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const columns = "(card_number, expiry_date, card_provider, date_payment_confirmed)"
	batch := make([]string, 0, g.cfg.BatchSize)

	seen := make(map[string]bool, count)
	for len(g.cardNumbers) < count {
		number := g.faker.CardNumber()
		if seen[number] {
			continue
		}
		seen[number] = true
		g.cardNumbers = append(g.cardNumbers, number)

		batch = append(batch, fmt.Sprintf("(%s, %s, %s, '%s')",
			datagen.Literal(number),
			datagen.Literal(g.faker.ExpiryDate()),
			datagen.Literal(datagen.Choose(g.faker, cardProviders)),
			g.faker.DateRange(salesStart, salesEnd).Format("2006-01-02"),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_card_details", columns, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_card_details", columns, batch); err != nil {
		return err
	}
	logging.Info().Int("count", len(g.cardNumbers)).Msg("dim_card_details complete")
	return nil
}

// generateDateTimes creates one date/time row per future sale event.
func (g *Generator) generateDateTimes(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const columns = "(date_uuid, \"timestamp\", year, month, day, time_period)"
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("dim_date_times", int64(count), g.cfg.ProgressInterval)

	for i := 0; i < count; i++ {
		uuid := g.faker.UUID()
		g.dateUUIDs = append(g.dateUUIDs, uuid)

		ts := g.faker.DateRange(salesStart, salesEnd)
		batch = append(batch, fmt.Sprintf("('%s', '%s', %d, %d, %d, %s)",
			uuid,
			ts.Format("2006-01-02 15:04:05"),
			ts.Year(),
			int(ts.Month()),
			ts.Day(),
			datagen.Literal(timePeriod(ts.Hour())),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_date_times", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := datagen.ExecuteBatchInsert(ctx, pool, "dim_date_times", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func (g *Generator) generateOrders(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const columns = "(date_uuid, user_uuid, card_number, store_code, product_code, product_quantity)"
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("orders_table", int64(count), g.cfg.ProgressInterval)

	for i := 0; i < count; i++ {
		// Each sale event consumes its own date row.
		batch = append(batch, fmt.Sprintf("('%s', '%s', %s, %s, %s, %d)",
			g.dateUUIDs[i],
			datagen.Choose(g.faker, g.userUUIDs),
			datagen.Literal(datagen.Choose(g.faker, g.cardNumbers)),
			datagen.Literal(datagen.Choose(g.faker, g.storeCodes)),
			datagen.Literal(datagen.Choose(g.faker, g.productCodes)),
			g.faker.Int(1, 12),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := datagen.ExecuteBatchInsert(ctx, pool, "orders_table", columns, batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}
	if err := datagen.ExecuteBatchInsert(ctx, pool, "orders_table", columns, batch); err != nil {
		return err
	}
	progress.Update(int64(len(batch)))
	progress.Done()
	return nil
}

func timePeriod(hour int) string {
	switch {
	case hour < 6:
		return "Late_Hours"
	case hour < 12:
		return "Morning"
	case hour < 18:
		return "Midday"
	default:
		return "Evening"
	}
}

func countryName(code string) string {
	switch code {
	case "GB":
		return "United Kingdom"
	case "DE":
		return "Germany"
	case "US":
		return "United States"
	default:
		return code
	}
}
