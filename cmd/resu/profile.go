package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resu/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Work with the master profile",
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a profile file and summarize its contents",
	Long:  "Validate the profile at path, or at profile.path from the configuration when no path is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileValidate,
}

func init() {
	profileCmd.AddCommand(profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileValidate(cmd *cobra.Command, args []string) error {
	path := cfg.Profile.Path
	if len(args) == 1 {
		path = args[0]
	}

	prof, err := profile.Load(path)
	if err != nil {
		return err
	}

	bullets := 0
	for _, exp := range prof.Experience {
		bullets += len(exp.Bullets)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s is valid\n", path)
	fmt.Fprintf(out, "  Name:           %s\n", prof.Contact.Name)
	fmt.Fprintf(out, "  Experiences:    %d (%d bullets)\n", len(prof.Experience), bullets)
	fmt.Fprintf(out, "  Skills:         %d\n", len(prof.Skills))
	fmt.Fprintf(out, "  Projects:       %d\n", len(prof.Projects))
	fmt.Fprintf(out, "  Certifications: %d\n", len(prof.Certifications))
	return nil
}
