package cmd

import (
	"fmt"
	"os"

	"romdat/core/config"
	"romdat/core/logger"
	"romdat/feature/catalog"
	"romdat/feature/catalog/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <table.dat>",
	Short: "Perform integrity checks on a compiled table",
	Long: `Checks the structural invariants of a compiled table: ascending unique
checksums, in-bounds references pointing at direct-form records, and a
duplicate-free patch table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read table: %w", err)
		}
		table, err := catalog.LoadTable(data)
		if err != nil {
			return err
		}

		logg.Info("Checking table...",
			zap.String("table", args[0]),
			zap.Int("records", len(table.Entries)),
			zap.Int("patches", len(table.Patches)-1))

		violations := checks.VerifyTable(table)
		if len(violations) == 0 {
			logg.Info("Table is sound.")
			return nil
		}
		for _, v := range violations {
			logg.Warn("Violation", zap.String("detail", v))
		}
		return fmt.Errorf("table failed %d integrity checks", len(violations))
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
