package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/CoderFake/healthcare-system/internal/application/services"
)

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the schema, apply migrations and seed settings and the admin account",
		RunE: withApp(func(ctx context.Context, a *app) error {
			report, err := services.NewSetupService(a.migrator, a.store, a.cfg).Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Applied migrations: %d\n", len(report.Migrations))
			for _, name := range report.Migrations {
				fmt.Printf("  %s\n", name)
			}
			fmt.Printf("Seeded settings: %s\n", listOrNone(report.SettingsSeeded))
			if report.AdminCreated {
				fmt.Printf("Created administrator %q\n", a.cfg.Admin.Username)
			}
			return nil
		}),
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage SQL migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations in filename order",
		RunE: withApp(func(ctx context.Context, a *app) error {
			if err := a.migrator.EnsureBaseSchema(ctx); err != nil {
				return err
			}
			applied, err := a.migrator.Up(ctx)
			for _, name := range applied {
				fmt.Printf("applied %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("nothing to apply")
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migration files and whether they have been applied",
		RunE: withApp(func(ctx context.Context, a *app) error {
			statuses, err := a.migrator.Status(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MIGRATION\tSTATUS\tAPPLIED AT")
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, state, s.AppliedAt)
			}
			return tw.Flush()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Write an empty timestamped migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				path, err := a.migrator.Create(args[0], time.Now())
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			})(cmd, args)
		},
	})

	return cmd
}

func schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write every table's DDL and columns as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				var out io.Writer = os.Stdout
				if len(args) == 1 {
					f, err := os.Create(args[0])
					if err != nil {
						return fmt.Errorf("create %s: %w", args[0], err)
					}
					defer f.Close()
					out = f
				}
				return a.migrator.ExportSchema(ctx, out)
			})(cmd, args)
		},
	})

	return cmd
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [path]",
		Short: "Write a consistent copy of the database (timestamped file in BACKUP_DIR by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				var path string
				if len(args) == 1 {
					path = args[0]
				}
				written, err := services.NewMaintenanceService(a.client).Backup(ctx, path)
				if err != nil {
					return err
				}
				fmt.Printf("backup written to %s\n", written)
				return nil
			})(cmd, args)
		},
	}
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <path>",
		Short: "Replace the database with a backup file",
		Args:  cobra.ExactArgs(1),
	}
	yes := cmd.Flags().Bool("yes", false, "Confirm that the current database will be replaced")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !*yes {
			return errors.New("restore replaces the current database; rerun with --yes to confirm")
		}
		return withApp(func(ctx context.Context, a *app) error {
			if err := services.NewMaintenanceService(a.client).Restore(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("database restored from %s\n", args[0])
			return nil
		})(cmd, args)
	}
	return cmd
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
