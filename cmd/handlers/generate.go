package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"careerlens/internal/config"
	"careerlens/internal/insights"
	"careerlens/internal/llm"
)

// NewGenerateCmd creates the generate command for one-shot insight runs.
// Nothing is persisted; the normalized record is printed to stdout.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <industry>",
		Short: "Run the insight pipeline for one industry and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0])
		},
	}
	return cmd
}

func runGenerate(cmd *cobra.Command, industry string) error {
	if _, err := config.Load(cfgFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gen, err := llm.NewClient(config.GetGeminiModel())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := insights.NewService(gen, nil)
	data, err := svc.Generate(cmd.Context(), industry)
	if err != nil {
		// The pipeline already substituted defaults; surface the cause so
		// the operator knows the output is a fallback.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
