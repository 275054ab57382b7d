package main

import (
	"fmt"
	"os"

	"github.com/jcabanilla/internhub/internal/form"
	"github.com/jcabanilla/internhub/internal/observability"
	"github.com/spf13/cobra"
)

var (
	scoreSourceFile    string
	scoreCandidateFile string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compare two posting form files for near-duplicate similarity",
	Long:  "Normalize two raw posting form JSON files, compute their field-level similarity, and report whether the candidate would be blocked as a duplicate of the source.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreSourceFile, "source", "", "Path to the source posting JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate", "", "Path to the candidate posting JSON file (required)")
	_ = scoreCmd.MarkFlagRequired("source")
	_ = scoreCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	sourceRaw, err := readPostingFile(scoreSourceFile)
	if err != nil {
		return err
	}
	candidateRaw, err := readPostingFile(scoreCandidateFile)
	if err != nil {
		return err
	}

	source := form.Normalize(sourceRaw)
	candidate := form.Normalize(candidateRaw)

	report := form.Similarity(source, candidate)
	verdict := form.DuplicateVerdict(source, candidate, report)

	observability.NewPrinter(os.Stdout).PrintSimilarityReport(report, verdict)

	if verdict == form.VerdictBlock {
		return fmt.Errorf("candidate posting is a near-duplicate")
	}
	return nil
}
