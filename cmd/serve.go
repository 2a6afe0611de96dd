package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"romdat/core/config"
	"romdat/core/logger"
	"romdat/core/middleware/rayid"
	"romdat/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tableFlag string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve record lookups from a compiled table",
	Long:  `Starts an HTTP server answering checksum lookups against a compiled table.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Load the compiled table
		tablePath := cfg.Server.Table
		if tableFlag != "" {
			tablePath = tableFlag
		}
		data, err := os.ReadFile(tablePath)
		if err != nil {
			logg.Fatal("Failed to read table", zap.String("table", tablePath), zap.Error(err))
		}
		table, err := catalog.LoadTable(data)
		if err != nil {
			logg.Fatal("Failed to load table", zap.String("table", tablePath), zap.Error(err))
		}
		logg.Info("Table loaded",
			zap.String("table", tablePath),
			zap.Int("records", len(table.Entries)),
			zap.Int("patches", len(table.Patches)-1))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 5. Register Routes
		catalog.NewHandler(table, logg).RegisterRoutes(app)

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&tableFlag, "table", "", "Path of the compiled table to serve (overrides config)")
}
