package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/gompdf/worksheet/internal/config"
	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/logger"
	"github.com/gompdf/worksheet/internal/mcp"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"estimate": true, "paginate": true, "max-verses": true,
	"preview": true, "export": true,
	"surahs": true, "import": true, "history": true,
	"config": true, "mcp": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func printBanner() {
	fmt.Println(`
  Lembar Kerja Al-Qur'an

  Usage: worksheet <command> [options]
         worksheet --help

  MCP server mode requires piped input.`)
}

// loadRepository prefers imported surahs and falls back to the embedded set.
func loadRepository(db *sql.DB) (quran.Repository, error) {
	repo, err := store.Repository(db)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}
	return quran.Embedded()
}

func main() {
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	cfg := config.Load()
	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if isHelpOrVersion() {
		app := newCLIApp(&appEnv{cfg: &cfg})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	database, err := store.Init(cfg.Storage.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	repo, err := loadRepository(database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load surahs: %v\n", err)
		os.Exit(1)
	}

	if isCLIMode() {
		app := newCLIApp(&appEnv{db: database, cfg: &cfg, repo: repo})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'worksheet --help' for usage.\n")
		os.Exit(1)
	}

	if err := mcp.Run(repo, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
