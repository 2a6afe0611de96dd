package cmd

import (
	"fmt"
	"os"

	"romdat/core/config"
	"romdat/core/logger"
	"romdat/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <before.dat> <after.dat>",
	Short: "Compare two compiled tables",
	Long: `Reports records added, removed or behaviorally changed between two compiled
tables, in ascending checksum order. References are resolved and patch
payloads compared by text, so layout-only differences stay quiet.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		before, err := loadTableFile(args[0])
		if err != nil {
			return err
		}
		after, err := loadTableFile(args[1])
		if err != nil {
			return err
		}

		diffs := catalog.Diff(before, after)
		var added, removed, changed int
		for _, d := range diffs {
			switch d.Kind {
			case catalog.DiffAdded:
				added++
			case catalog.DiffRemoved:
				removed++
			case catalog.DiffChanged:
				changed++
			}
			fmt.Printf("%-8s %016X %s\n", d.Kind, d.CRC, d.Detail)
		}

		logg.Info("Diff finished",
			zap.Int("added", added),
			zap.Int("removed", removed),
			zap.Int("changed", changed),
			zap.Int("before", len(before.Entries)),
			zap.Int("after", len(after.Entries)),
		)
		return nil
	},
}

func loadTableFile(path string) (*catalog.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return catalog.LoadTable(data)
}

func init() {
	RootCmd.AddCommand(diffCmd)
}
