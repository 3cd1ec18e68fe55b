package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/resu/internal/observability"
	"github.com/jonathan/resu/internal/pipeline"
)

var (
	confirmReview string
	confirmOut    string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Finish a run from a reviewed selection",
	Long:  "Generate, score and save a résumé from a review file written by 'resu generate --parse-only'.",
	RunE:  runConfirm,
}

func init() {
	confirmCmd.Flags().StringVar(&confirmReview, "review", "", "Path to the reviewed JSON file")
	confirmCmd.Flags().StringVarP(&confirmOut, "out", "o", "", "Write the JSON result to this file")
	_ = confirmCmd.MarkFlagRequired("review")

	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var review pipeline.ReviewResult
	if err := readJSON(confirmReview, &review); err != nil {
		return err
	}

	svc, err := newServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Orchestrator.Confirm(ctx, pipeline.ConfirmRequest{
		JDText:             review.JDText,
		ParsedJD:           review.ParsedJD,
		RelevanceSelection: review.RelevanceSelection,
		Config:             &review.Config,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return reportResult(out, observability.NewPrinter(out), result, confirmOut)
}
