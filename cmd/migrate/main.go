// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate up
//	migrate down [N | --all]
//	migrate version
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate up | down [N|--all] | version")
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, cfg.DB.Driver)
	if err != nil {
		l.Fatal("Failed to prepare migrations", zap.Error(err))
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = migrator.Up()
	case "down":
		steps, parseErr := parseSteps(flag.Args()[1:])
		if parseErr != nil {
			flag.Usage()
			l.Fatal("Invalid down arguments", zap.Error(parseErr))
		}
		err = migrator.Down(steps)
	case "version":
		// handled below
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		l.Fatal("Migration failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		l.Fatal("Failed to read schema version", zap.Error(err))
	}
	l.Info("Schema version", zap.String("driver", cfg.DB.Driver), zap.Uint("version", version), zap.Bool("dirty", dirty))
}

// parseSteps reads the down argument: nothing means one step, --all means every step.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	if args[0] == "--all" {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("steps must be a positive number or --all, got %q", args[0])
	}
	return n, nil
}
