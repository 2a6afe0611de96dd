package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"romdat/core/config"
	"romdat/core/logger"
	"romdat/core/storage"
	"romdat/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fromStorageFlag bool
var uploadFlag bool

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile <catalog.ini> <table.dat>",
	Short: "Compile a ROM catalog into a binary table",
	Long: `Compiles the line-oriented catalog into the sorted binary record table and a
canonicalized INI next to it. With --from-storage the input argument is an
object key in the configured bucket; with --upload the compiled table is also
put back into the bucket. Nothing is written if any stage fails.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		input, output := args[0], args[1]

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		var client storage.Client
		if fromStorageFlag || uploadFlag {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		svc := catalog.NewService(client, cfg.Storage.Bucket, logg)

		var res *catalog.CompileResult
		if fromStorageFlag {
			logg.Info("Compiling catalog from bucket",
				zap.String("object", input), zap.String("bucket", cfg.Storage.Bucket))
			res, err = svc.CompileObject(cmd.Context(), input, output)
		} else {
			logg.Info("Compiling catalog", zap.String("input", input))
			res, err = svc.CompileFile(input, output)
		}
		if err != nil {
			return err
		}

		if uploadFlag {
			object := filepath.Base(output)
			if err := svc.Upload(cmd.Context(), object, res.Binary); err != nil {
				return err
			}
			logg.Info("Table uploaded", zap.String("object", object), zap.String("bucket", cfg.Storage.Bucket))
		}

		logg.Info("Compile finished",
			zap.Int("parsed", res.Parsed),
			zap.Int("emitted", res.Emitted),
			zap.Int("patches", res.Patches),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&fromStorageFlag, "from-storage", false, "Read the catalog from the configured bucket")
	compileCmd.Flags().BoolVar(&uploadFlag, "upload", false, "Upload the compiled table to the configured bucket")
}
