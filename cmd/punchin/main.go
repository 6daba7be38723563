package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mlowery/punchin/internal/cli"
	"github.com/mlowery/punchin/internal/db"
	"github.com/mlowery/punchin/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath, err := db.DefaultPath()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	reg := service.NewRegistry(database)
	defer reg.CloseDB()

	app := &cli.App{
		Catalog:   service.NewCatalog(reg.Company(), reg.Project(), reg.Task()),
		Tracker:   service.NewTracker(reg.Session(), reg.Task(), service.NewOpenSessionCache(0)),
		Companies: reg.Company(),
		Projects:  reg.Project(),
		Tasks:     reg.Task(),
		Sessions:  reg.Session(),
		Reports:   reg.Report(),
	}

	// Pickers and the watch view are only offered on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
