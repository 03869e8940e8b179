package main

import (
	"fmt"
	"os"

	"github.com/aretw0/folium/internal/cli"
	"github.com/aretw0/folium/internal/config"
	"github.com/aretw0/folium/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "folium",
	Short: "Folium is a headless block editor state engine",
	Long: `Folium keeps block documents, their pending edits, selection and undo
history, and applies editor actions to them from scripts, HTTP or MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	addConfigFlags(rootCmd.PersistentFlags())
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Path to a YAML config file")
	fs.String("store", "", "Store backend: memory, file, redis or sqlite (overrides config)")
	fs.String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// loadConfig reads the config file and environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store = store
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

// buildApp loads the configuration and wires the application. The caller
// must Close it.
func buildApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.Build(cmd.Context(), cfg, logging.New(cfg.Level()))
}
