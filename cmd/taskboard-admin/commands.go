package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/target/recruit-board/internal/bootstrap"
	"github.com/target/recruit-board/internal/migrate"
)

const defaultCommandTimeout = 5 * time.Minute

type migrateOptions struct {
	Timeout time.Duration
}

type orphanOptions struct {
	Timeout time.Duration
	JSON    bool
}

func parseMigrateFlags(name string, args []string) (migrateOptions, error) {
	opts := migrateOptions{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum time to wait for the command")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Timeout <= 0 {
		return opts, fmt.Errorf("timeout must be positive, got %s", opts.Timeout)
	}
	return opts, nil
}

func parseOrphanFlags(args []string) (orphanOptions, error) {
	opts := orphanOptions{}
	fs := flag.NewFlagSet("orphaned-resumes", flag.ContinueOnError)
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum time to wait for the command")
	fs.BoolVar(&opts.JSON, "json", false, "Print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Timeout <= 0 {
		return opts, fmt.Errorf("timeout must be positive, got %s", opts.Timeout)
	}
	return opts, nil
}

func commandDeadline(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func connectDB(cmdCtx *commandContext) (*sql.DB, func(), error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	return db, func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags("migrate", args)
	if err != nil {
		return err
	}
	ctx, cancel := commandDeadline(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, closeDB, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB()

	cmdCtx.Logger.Info("running database migrations")
	if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
		return fmt.Errorf("run migrations: %w", migrateErr)
	}
	cmdCtx.Logger.Info("migrations completed successfully")
	return nil
}

func runMigrationStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags("migrate-status", args)
	if err != nil {
		return err
	}
	ctx, cancel := commandDeadline(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, closeDB, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB()

	statuses, err := migrate.Status(ctx, db)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return printMigrationStatus(cmdCtx.Out, statuses)
}

func printMigrationStatus(w io.Writer, statuses []migrate.MigrationStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "VERSION\tAPPLIED\n"); err != nil {
		return err
	}
	for _, s := range statuses {
		applied := "no"
		if s.Applied {
			applied = "yes"
		}
		if err := writef(tw, "%s\t%s\n", s.Version, applied); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// orphanReport lists blobs in storage that no user row references.
type orphanReport struct {
	Referenced int      `json:"referenced"`
	Orphaned   []string `json:"orphaned"`
}

func runOrphanedResumes(cmdCtx *commandContext, args []string) error {
	opts, err := parseOrphanFlags(args)
	if err != nil {
		return err
	}
	ctx, cancel := commandDeadline(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, closeDB, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB()

	blobs, err := bootstrap.ConnectBlobStore(ctx, bootstrap.StorageDeps{
		Storage: cmdCtx.Config.Storage,
		BaseURL: cmdCtx.Config.HTTP.BaseURL,
		Logger:  cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		DB:     db,
		Blobs:  blobs,
		Logger: cmdCtx.Logger,
	})

	referenced, err := services.UserRepo.ListResumeIDs(ctx)
	if err != nil {
		return fmt.Errorf("list referenced resumes: %w", err)
	}
	orphans, err := services.Resumes.Orphans(ctx, referenced)
	if err != nil {
		return fmt.Errorf("list orphaned resumes: %w", err)
	}

	return printOrphanReport(cmdCtx.Out, orphanReport{Referenced: len(referenced), Orphaned: orphans}, opts.JSON)
}

func printOrphanReport(w io.Writer, report orphanReport, asJSON bool) error {
	if report.Orphaned == nil {
		report.Orphaned = []string{}
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if err := writef(w, "Referenced resumes: %d\nOrphaned resumes:   %d\n", report.Referenced, len(report.Orphaned)); err != nil {
		return err
	}
	for _, id := range report.Orphaned {
		if err := writef(w, "  %s\n", id); err != nil {
			return err
		}
	}
	return nil
}
