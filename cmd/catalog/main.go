package main

import (
	"fmt"
	"os"

	"github.com/gartstein/catalog/internal/catalog/config"
	"github.com/gartstein/catalog/internal/catalog/controller"
	"github.com/gartstein/catalog/internal/catalog/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "catalog",
	Short:        "Read-only catalog API for companies, moments and drops",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

func syncLogger(logger *zap.Logger) {
	// stderr/stdout do not support fsync on most platforms
	_ = logger.Sync()
}

// loadConfig loads the YAML configuration with environment overrides applied.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// initDatabase maps the service configuration onto the repository settings.
func initDatabase(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

func initLimits(cfg *config.Config) controller.Limits {
	return controller.Limits{
		CompanyPageSize:   cfg.CompanyPageSize,
		DefaultLimit:      cfg.DefaultLimit,
		ExpiringSoonCount: cfg.ExpiringSoonCount,
		EndingSoonCount:   cfg.EndingSoonCount,
		MegamenuItems:     cfg.MegamenuItems,
	}
}
