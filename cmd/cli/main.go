package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/akeren/seam-landing/config"
	"github.com/akeren/seam-landing/domain/visits"
	"github.com/akeren/seam-landing/domain/waitlist"
	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/migrations"
	"github.com/akeren/seam-landing/pkg/utils"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := runMigrate(logger); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("Database migrations completed")

	case "report":
		reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
		days := reportCmd.Int("days", defaultReportDays, "number of most recent days of visits to print")
		_ = reportCmd.Parse(args[1:])

		if err := runReport(logger, *days); err != nil {
			logger.Error("Report failed", "error", err.Error())
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrate(logger *log.Logger) error {
	dbCfg := config.NewDBConfig()
	db, err := config.NewDatabase(logger, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer config.CloseDatabase(db, logger)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance: %w", err)
	}

	driver := dbCfg.MigrationDriver()
	migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", migrations.DefaultDir(driver))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return migrations.Up(ctx, sqlDB, migrations.Config{Driver: driver, Dir: migrationsDir, Logger: logger})
}

func runReport(logger *log.Logger, days int) error {
	appCfg, err := config.NewAppConfig()
	if err != nil {
		return err
	}

	db, err := config.NewDatabase(logger, config.NewDBConfig())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer config.CloseDatabase(db, logger)

	waitlistService := waitlist.NewWaitlistServiceFactory(db, logger, waitlist.WithLocation(appCfg.Timezone)).CreateService()
	visitService := visits.NewVisitServiceFactory(db, logger, visits.WithLocation(appCfg.Timezone)).CreateService()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := visits.CalendarDate(time.Now(), appCfg.Timezone)
	return writeReport(ctx, os.Stdout, waitlistService, visitService, days, today)
}

func printUsage() {
	fmt.Println("Usage: cli <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate          Run SQL migrations from MIGRATIONS_DIR and exit")
	fmt.Println("  report [--days N]  Print waitlist counts by category and the last N days of visits")
}
