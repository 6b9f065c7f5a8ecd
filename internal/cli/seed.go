package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrdc/salesdwh/internal/db"
	"github.com/mrdc/salesdwh/internal/logging"
	"github.com/mrdc/salesdwh/internal/schema"
	"github.com/mrdc/salesdwh/internal/seed"
)

var (
	seedProducts   int
	seedStores     int
	seedUsers      int
	seedCards      int
	seedOrders     int
	seedRandomSeed uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the schema with generated test data",
	Long: `Generate test data for all six tables, dimensions first so every
foreign key resolves. The configured web store code is always created so
the channel report has its online partition.

Run 'salesdwh migrate' first.

Example:
  salesdwh seed --orders 10000 --connection "postgres://..."`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedProducts, "products", 0,
		"number of products to generate")
	seedCmd.Flags().IntVar(&seedStores, "stores", 0,
		"number of stores to generate (including the web store)")
	seedCmd.Flags().IntVar(&seedUsers, "users", 0,
		"number of users to generate")
	seedCmd.Flags().IntVar(&seedCards, "cards", 0,
		"number of payment cards to generate")
	seedCmd.Flags().IntVar(&seedOrders, "orders", 0,
		"number of orders to generate")
	seedCmd.Flags().Uint64Var(&seedRandomSeed, "random-seed", 0,
		"seed for reproducible data generation (0 = random)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedProducts > 0 {
		cfg.Seed.Products = seedProducts
	}
	if seedStores > 0 {
		cfg.Seed.Stores = seedStores
	}
	if seedUsers > 0 {
		cfg.Seed.Users = seedUsers
	}
	if seedCards > 0 {
		cfg.Seed.Cards = seedCards
	}
	if seedOrders > 0 {
		cfg.Seed.Orders = seedOrders
	}
	if seedRandomSeed != 0 {
		cfg.Seed.RandomSeed = seedRandomSeed
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if _, err := db.GetMetadataValue(ctx, pool, "schema_version"); err != nil {
		return fmt.Errorf("schema not migrated; run 'salesdwh migrate' first")
	}

	gen := seed.NewGenerator(cfg.Seed.RandomSeed)
	counts := seed.Counts{
		Products: cfg.Seed.Products,
		Stores:   cfg.Seed.Stores,
		Users:    cfg.Seed.Users,
		Cards:    cfg.Seed.Cards,
		Orders:   cfg.Seed.Orders,
	}

	if err := gen.Run(ctx, pool, counts, cfg.Reports.WebStoreCode); err != nil {
		if name := schema.ViolatedConstraint(err); name != "" {
			return fmt.Errorf("seed violated %s: %w", name, err)
		}
		return fmt.Errorf("failed to seed data: %w", err)
	}

	logging.Info().Msg("Seed finished")
	return nil
}
