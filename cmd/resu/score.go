package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resu/internal/ats"
	"github.com/jonathan/resu/internal/normalize"
	"github.com/jonathan/resu/internal/observability"
)

var (
	scoreResume string
	scoreJD     string
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé against a parsed job description",
	Long:  "Compute the ATS compatibility score of a résumé JSON file against a parsed job description JSON file. No model calls are made.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreResume, "resume", "", "Path to résumé JSON")
	scoreCmd.Flags().StringVar(&scoreJD, "jd", "", "Path to parsed job description JSON")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the score as JSON")
	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	resume, err := readNormalized(scoreResume, normalize.ResumeData)
	if err != nil {
		return err
	}
	jd, err := readNormalized(scoreJD, normalize.JobDescription)
	if err != nil {
		return err
	}

	result := ats.Score(resume, jd)
	if scoreJSON {
		return writeJSON(cmd.OutOrStdout(), "", result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintATSScore(&result)
	return nil
}
