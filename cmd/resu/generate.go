package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/resu/internal/ingestion"
	"github.com/jonathan/resu/internal/observability"
	"github.com/jonathan/resu/internal/pipeline"
	"github.com/jonathan/resu/internal/types"
)

var (
	genJDFile    string
	genJDURL     string
	genParseOnly bool
	genOut       string
	genCompany   string
	genRole      string
	genTone      string
	genPages     int
	genTemplate  string
	genEmphasize []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored résumé from a job description",
	Long: `Parse a job description, select relevant experience from the profile and generate a résumé.

With --parse-only the run stops at the review checkpoint and writes the review to --out;
edit the selection and finish with 'resu confirm'. Otherwise the selection is accepted as proposed.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genJDFile, "jd-file", "", "Path to a job description (text or HTML); '-' reads stdin")
	generateCmd.Flags().StringVar(&genJDURL, "jd-url", "", "URL of a job posting to fetch")
	generateCmd.Flags().BoolVar(&genParseOnly, "parse-only", false, "Stop at the review checkpoint")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the JSON result to this file")
	generateCmd.Flags().StringVar(&genCompany, "company", "", "Company name hint")
	generateCmd.Flags().StringVar(&genRole, "role", "", "Role title hint")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Tone: formal, professional or conversational")
	generateCmd.Flags().IntVar(&genPages, "pages", 0, "Target page length (1 or 2)")
	generateCmd.Flags().StringVar(&genTemplate, "template", "", "Template id")
	generateCmd.Flags().StringSliceVar(&genEmphasize, "emphasize", nil, "Skills to emphasize (comma-separated)")
	generateCmd.MarkFlagsMutuallyExclusive("jd-file", "jd-url")
	generateCmd.MarkFlagsOneRequired("jd-file", "jd-url")

	rootCmd.AddCommand(generateCmd)
}

func generationConfig() *types.GenerationConfig {
	return &types.GenerationConfig{
		CompanyName:       genCompany,
		RoleTitle:         genRole,
		Tone:              types.Tone(genTone),
		SkillsToEmphasize: genEmphasize,
		TargetPageLength:  genPages,
		TemplateID:        genTemplate,
	}
}

// readJD loads the job description from a file, stdin or URL
func readJD(ctx context.Context, stdin io.Reader) (string, error) {
	switch {
	case genJDURL != "":
		doc, err := ingestion.FetchURL(ctx, nil, genJDURL)
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	case genJDFile == "-":
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return ingestion.PrepareText(string(raw)), nil
	default:
		doc, err := ingestion.ReadFile(genJDFile)
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	jdText, err := readJD(ctx, cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, err := newServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	review, err := svc.Orchestrator.Start(ctx, pipeline.StartRequest{JDText: jdText, Config: generationConfig()})
	if err != nil {
		return err
	}
	printer.PrintParsedJD(review.ParsedJD)
	printer.PrintSelection(review.RelevanceSelection)
	printer.PrintTokenUsage(review.TokenUsage)

	if genParseOnly {
		if genOut == "" {
			return writeJSON(out, "", review)
		}
		if err := writeJSON(out, genOut, review); err != nil {
			return err
		}
		fmt.Fprintf(out, "Review written to %s; edit it and run 'resu confirm --review %s'\n", genOut, genOut)
		return nil
	}

	result, err := svc.Orchestrator.Confirm(ctx, pipeline.ConfirmRequest{
		JDText:             review.JDText,
		ParsedJD:           review.ParsedJD,
		RelevanceSelection: review.RelevanceSelection,
		Config:             &review.Config,
	})
	if err != nil {
		return err
	}
	return reportResult(out, printer, result, genOut)
}

// reportResult prints the score summary and writes the full result to outPath if given
func reportResult(out io.Writer, printer *observability.Printer, result *pipeline.ConfirmResult, outPath string) error {
	printer.PrintATSScore(&result.ATSScore)
	printer.PrintTokenUsage(result.TokenUsage)
	fmt.Fprintf(out, "Saved résumé %s\n", result.ID)
	if outPath == "" {
		return nil
	}
	return writeJSON(out, outPath, result)
}
