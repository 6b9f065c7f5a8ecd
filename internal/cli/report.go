package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrdc/salesdwh/internal/db"
	"github.com/mrdc/salesdwh/internal/logging"
	"github.com/mrdc/salesdwh/internal/reports"
)

var (
	reportWebStoreCode  string
	reportExcludedYears []int
	reportFormat        string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the warehouse's analytical reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available reports",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, def := range reports.Definitions() {
			cmd.Printf("  %-28s %s\n", def.Name, def.Description)
		}
		cmd.Println()
		cmd.Println("Use 'salesdwh report run <name>' or 'salesdwh report run all'.")
	},
}

var reportRunCmd = &cobra.Command{
	Use:   "run <name|all>",
	Short: "Run one report, or all of them",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportRunCmd.Flags().StringVar(&reportWebStoreCode, "web-store-code", "",
		"store code identifying the online channel")
	reportRunCmd.Flags().IntSliceVar(&reportExcludedYears, "excluded-years", nil,
		"outlier years skipped by the rate-based sales-frequency report")
	reportRunCmd.Flags().StringVar(&reportFormat, "format", "table",
		"output format (table, json)")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportRunCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportWebStoreCode != "" {
		cfg.Reports.WebStoreCode = reportWebStoreCode
	}
	if len(reportExcludedYears) > 0 {
		cfg.Reports.ExcludedYears = reportExcludedYears
	}

	if err := cfg.ValidateReports(); err != nil {
		return err
	}
	if reportFormat != "table" && reportFormat != "json" {
		return fmt.Errorf("unknown format: %s", reportFormat)
	}

	var defs []reports.Definition
	if args[0] == "all" {
		defs = reports.Definitions()
	} else {
		def, err := reports.Get(args[0])
		if err != nil {
			return err
		}
		defs = []reports.Definition{def}
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	opts := reports.Options{
		WebStoreCode:  cfg.Reports.WebStoreCode,
		ExcludedYears: cfg.Reports.ExcludedYears,
	}

	for _, def := range defs {
		logging.Debug().Str("report", def.Name).Msg("Running report")

		result, err := def.Run(ctx, pool, opts)
		if err != nil {
			return fmt.Errorf("report %s failed: %w", def.Name, err)
		}

		if len(defs) > 1 {
			cmd.Printf("== %s: %s\n", def.Name, def.Description)
		}
		if err := printResult(cmd, result, reportFormat); err != nil {
			return err
		}
		if len(defs) > 1 {
			cmd.Println()
		}
	}

	return nil
}

func printResult(cmd *cobra.Command, result *reports.Result, format string) error {
	if format == "json" {
		rows := make([]map[string]string, 0, len(result.Rows))
		for _, row := range result.Rows {
			obj := make(map[string]string, len(result.Columns))
			for i, col := range result.Columns {
				obj[col] = row[i]
			}
			rows = append(rows, obj)
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
