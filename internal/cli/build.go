package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/claimtrace/internal/extract"
	"github.com/ppiankov/claimtrace/internal/graph"
	"github.com/ppiankov/claimtrace/internal/llm"
	"github.com/ppiankov/claimtrace/internal/model"
	"github.com/ppiankov/claimtrace/internal/nav"
)

var (
	buildOut     string
	buildYAML    bool
	buildContent string
	llmEnabled   bool
	llmModel     string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <analysis-file>",
	Short: "Build the diagram payload from an analysis text file",
	Long: `Build parses a fact-check analysis file (markdown or HTML), extracts the
typed entities, constructs the positioned graph, and derives the navigation
index. The resulting payload is what a rendering surface consumes.

Example:
  claimtrace build analysis.md
  claimtrace build analysis.md --content "5G towers spread the virus" -o payload.json
  claimtrace build analysis.md --yaml
  claimtrace build analysis.md --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output path (default: stdout)")
	buildCmd.Flags().BoolVar(&buildYAML, "yaml", false, "emit YAML instead of JSON")
	buildCmd.Flags().StringVar(&buildContent, "content", "", "current claim text (defaults to the first line of the file)")
	buildCmd.Flags().BoolVar(&llmEnabled, "llm", false, "use the LLM structuring fallback when heuristics find nothing")
	buildCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")

	rootCmd.AddCommand(verdictCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read analysis file: %w", err)
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.LLM.Model = llmModel
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	payload, err := buildPayload(cfg, string(raw), buildContent)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d nodes, %d edges, %d sections\n",
			len(payload.Nodes), len(payload.Edges), len(payload.NavSections))
	}

	return writePayload(payload, buildOut, buildYAML)
}

// buildPayload runs the extract -> graph -> nav pipeline on one analysis
// text, with the optional LLM fallback when heuristics find nothing
func buildPayload(cfg model.Config, rawText, content string) (model.DiagramPayload, error) {
	extractor := extract.New(cfg.Credibility)
	ex := extractor.Extract(rawText)

	if ex.IsEmpty() && cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(cfg.LLM)
		if err != nil {
			return model.DiagramPayload{}, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if structured, err := provider.Structure(ctx, rawText); err == nil {
			ex = *structured
		} else if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "llm fallback failed, keeping heuristic result: %v\n", err)
		}
	}

	if content == "" {
		content = firstLine(rawText)
	}

	g := graph.NewBuilder(cfg.Layout).Build(graph.Input{
		Tracing:    ex.OriginTracing,
		Drivers:    ex.BeliefDrivers,
		Sources:    ex.Sources,
		Verdict:    ex.Verdict,
		Content:    content,
		ExtraLinks: nil,
	})

	return model.DiagramPayload{
		Nodes:       g.Nodes,
		Edges:       g.Edges,
		NavSections: nav.BuildIndex(g.Nodes),
	}, nil
}

func writePayload(payload model.DiagramPayload, out string, asYAML bool) error {
	var data []byte
	var err error
	if asYAML {
		data, err = yaml.Marshal(payload)
	} else {
		data, err = json.MarshalIndent(payload, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// firstLine returns the first non-empty, non-header line of the text
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed
	}
	return ""
}

// verdictCmd classifies a verdict phrase from the keyword table
var verdictCmd = &cobra.Command{
	Use:   "verdict <text>",
	Short: "Classify a verdict phrase",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		verdict := extract.ClassifyVerdict(strings.Join(args, " "))
		if verdict == "" {
			fmt.Println("unclassified")
			return
		}
		fmt.Println(string(verdict))
	},
}
