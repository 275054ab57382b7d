package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jcabanilla/internhub/internal/form"
	"github.com/jcabanilla/internhub/internal/observability"
	"github.com/spf13/cobra"
)

var (
	lintInputFile string
	lintFlow      string
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a posting form file against the submission gate",
	Long:  "Normalize a raw posting form JSON file and report which required fields are missing for the selected flow.",
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().StringVarP(&lintInputFile, "in", "i", "", "Path to raw posting form JSON file (required)")
	lintCmd.Flags().StringVar(&lintFlow, "flow", string(form.FlowCreate), "Posting flow: create, duplicate, or quick-edit")
	_ = lintCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(lintCmd)
}

func runLint(_ *cobra.Command, _ []string) error {
	raw, err := readPostingFile(lintInputFile)
	if err != nil {
		return err
	}

	f := form.Normalize(raw)
	rules := form.RulesFor(form.Flow(lintFlow))
	errs := form.ValidateAll(f, rules)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintPostingSummary(f)
	printer.PrintValidation(errs)

	if !form.Valid(errs) {
		return fmt.Errorf("posting is incomplete")
	}
	return nil
}

func readPostingFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse posting JSON: %w", err)
	}
	return raw, nil
}
