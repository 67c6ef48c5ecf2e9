package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/internal/platform/db"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or seed the patient, claim and care-task catalogs",
	}

	listCmd := &cobra.Command{
		Use:       "list [patients|claims|care-tasks]",
		Short:     "Print a catalog from the configured source",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"patients", "claims", "care-tasks"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := catalog.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown catalog %q", args[0])
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, pool, err := openCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			if asJSON {
				return writeCatalogJSON(cmd.OutOrStdout(), store, kind)
			}
			return writeCatalogTable(cmd.OutOrStdout(), store, kind)
		},
	}
	listCmd.Flags().Bool("json", false, "Print JSON instead of a table")
	cmd.AddCommand(listCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in catalogs to DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			ctx := cmd.Context()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := catalog.Seed(ctx, pool, catalog.Mock())
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d catalog row(s).\n", n)
			return nil
		},
	}
	cmd.AddCommand(seedCmd)

	return cmd
}

func writeCatalogJSON(w io.Writer, store *catalog.Store, kind catalog.Kind) error {
	var v interface{}
	switch kind {
	case catalog.KindPatients:
		v = store.Patients()
	case catalog.KindClaims:
		v = store.Claims()
	case catalog.KindCareTasks:
		v = store.CareTasks()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCatalogTable(w io.Writer, store *catalog.Store, kind catalog.Kind) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch kind {
	case catalog.KindPatients:
		fmt.Fprintln(tw, "ID\tNAME\tDOB\tINSURANCE\tPOLICY\tSTATUS")
		for _, p := range store.Patients() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.DOB, p.Insurance, p.PolicyNumber, p.Status)
		}
	case catalog.KindClaims:
		fmt.Fprintln(tw, "ID\tCLAIM\tPATIENT\tAMOUNT\tSTATUS\tDAYS\tREASON")
		for _, c := range store.Claims() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n", c.ID, c.ClaimNumber, c.PatientName, c.Amount, c.Status, c.DaysPending, c.Reason)
		}
	case catalog.KindCareTasks:
		fmt.Fprintln(tw, "ID\tPATIENT\tTASK\tPRIORITY\tDUE\tCONTACT")
		for _, t := range store.CareTasks() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.PatientName, t.TaskType, t.Priority, t.DueDate, t.ContactMethod)
		}
	}
	return tw.Flush()
}
