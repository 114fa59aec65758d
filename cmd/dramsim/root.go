package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dramsim",
	Short: "dramsim drives an LPDDR5X device model and controller adapter.",
	Long: "dramsim resolves a device organization and timing catalog from a " +
		"YAML configuration, and can either describe the resolved catalog or " +
		"replay a request trace through it cycle by cycle.",
}

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dramsim: .env present but unreadable: %v", err)
	}

	defaultPath := os.Getenv("DRAM_CONFIG_PATH")

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", defaultPath,
		"path to a YAML memory-system configuration file")
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
