package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/claimtrace/internal/model"
	"github.com/ppiankov/claimtrace/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Build diagram payloads for a directory of analysis files",
	Long: `Batch builds every .md and .html analysis file in a directory
concurrently, writing one payload JSON per input file.

Example:
  claimtrace batch ./analyses
  claimtrace batch ./analyses --concurrency 8 --output-dir ./payloads`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./claimtrace-payloads", "output directory for payloads")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
}

// buildJob builds one analysis file into a payload file
type buildJob struct {
	cfg  model.Config
	path string
	out  string
}

// buildResult reports one finished build
type buildResult struct {
	path  string
	nodes int
	err   error
}

func (r buildResult) GetError() error { return r.err }

func (j buildJob) Execute(ctx context.Context) worker.Result {
	if err := ctx.Err(); err != nil {
		return buildResult{path: j.path, err: err}
	}

	raw, err := os.ReadFile(j.path)
	if err != nil {
		return buildResult{path: j.path, err: fmt.Errorf("read: %w", err)}
	}

	payload, err := buildPayload(j.cfg, string(raw), "")
	if err != nil {
		return buildResult{path: j.path, err: err}
	}
	if err := writePayload(payload, j.out, false); err != nil {
		return buildResult{path: j.path, err: err}
	}

	return buildResult{path: j.path, nodes: len(payload.Nodes)}
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read input directory: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	pool := worker.NewPool(ctx, concurrency)
	pool.Start()

	queued := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".md" && ext != ".html" && ext != ".txt" {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ext)
		pool.Submit(buildJob{
			cfg:  cfg,
			path: filepath.Join(dir, entry.Name()),
			out:  filepath.Join(outputDir, base+".json"),
		})
		queued++
	}

	if queued == 0 {
		pool.Shutdown()
		return fmt.Errorf("no analysis files found in %s", dir)
	}

	failed := 0
	for _, result := range pool.Wait() {
		r := result.(buildResult)
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.path, r.err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s (%d nodes)\n", r.path, r.nodes)
		}
	}

	fmt.Fprintf(os.Stderr, "Built %d/%d payloads into %s\n", queued-failed, queued, outputDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d builds failed", failed, queued)
	}
	return nil
}
