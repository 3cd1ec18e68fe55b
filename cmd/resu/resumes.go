package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resu/internal/db"
)

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Inspect stored résumés",
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored résumés, newest first",
	Args:  cobra.NoArgs,
	RunE:  runResumesList,
}

var resumesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored résumé as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesGet,
}

var resumesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored résumé and its versions",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumesDelete,
}

func init() {
	resumesCmd.AddCommand(resumesListCmd, resumesGetCmd, resumesDeleteCmd)
	rootCmd.AddCommand(resumesCmd)
}

// connectDB opens the configured database; stored résumés need PostgreSQL
func connectDB(ctx context.Context) (*db.DB, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is not configured; set DATABASE_URL")
	}
	return db.Connect(ctx, cfg.Database.URL)
}

func runResumesList(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	summaries, err := database.ListResumes(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tTITLE\tATS\tSTATUS\tTEMPLATE\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			s.ID, s.Company, s.JobTitle, s.ATSScore, s.Status, s.TemplateID, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runResumesGet(cmd *cobra.Command, args []string) error {
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	rec, err := database.GetResume(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), "", rec)
}

func runResumesDelete(cmd *cobra.Command, args []string) error {
	database, err := connectDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteResume(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
