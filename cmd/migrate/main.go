package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"golang-stock-sentiment/internal/analyzer/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	migrationsPath string
)

func newMigrate() *migrate.Migrate {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	m, err := migrate.New("file://"+migrationsPath, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	return m
}

func closeMigrate(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Migration source error on close: %v\n", srcErr)
	}
	if dbErr != nil {
		log.Printf("Migration database error on close: %v\n", dbErr)
	}
}

func runMigrations(direction string) {
	m := newMigrate()
	defer closeMigrate(m)

	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-1)
	}

	if migrationErr != nil && !errors.Is(migrationErr, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", migrationErr)
	}
	if direction == "up" {
		fmt.Println("Applied migrations successfully.")
	} else {
		fmt.Println("Reverted last migration successfully.")
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("down")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current migration version",
	Run: func(cmd *cobra.Command, args []string) {
		m := newMigrate()
		defer closeMigrate(m)

		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied.")
			return
		}
		if err != nil {
			log.Fatalf("Failed to read migration version: %v", err)
		}
		fmt.Printf("Version %d (dirty: %t)\n", version, dirty)
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-sentiment.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&migrationsPath, "path", "p", "migrations", "Directory holding the migration files")

	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
