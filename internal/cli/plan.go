package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/pipeline"
	"github.com/planhaus/planhaus/pkg/plan"
)

// planCommand creates the plan command for computing room layouts.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "plan [space.json]",
		Short: "Compute a room layout from a space request",
		Long: `Compute a room layout from a space request.

The plan command takes a space.json file describing the space dimensions,
the requested rooms, and any placement constraints. Rooms are placed highest
priority first using a grid search, the result is validated against the
constraints, and the scored layout is written as layout.json.

Additional output formats (svg, txt, dot) can be requested with --format.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return c.runPlan(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg, txt, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "report constraints that reference unknown rooms")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "SVG pixels per space unit")
	cmd.Flags().BoolVar(&opts.Grid, "grid", false, "draw a unit grid in the SVG")

	return cmd
}

// runPlan loads the space request, runs the pipeline, and writes the outputs.
func (c *CLI) runPlan(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	space, err := plan.ReadSpaceFile(input)
	if err != nil {
		return fmt.Errorf("load space %s: %w", input, err)
	}

	runner := c.newRunner(noCache)
	defer runner.Cache.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d rooms...", len(space.Rooms)))
	spinner.Start()

	result, err := runner.Execute(ctx, space, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	written := make([]string, 0, len(result.Artifacts))
	for _, format := range opts.Formats {
		path := artifactPath(output, base, format, len(opts.Formats) > 1)
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Layout complete (score %.2f)", result.Layout.Score)
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.RoomCount, result.Stats.PlacedCount, result.CacheInfo.PlanHit)
	if !result.Layout.IsValid() {
		printWarning("%d constraint violations", len(result.Layout.Violations))
		for _, v := range result.Layout.Violations {
			printDetail("%s", v)
		}
	}
	printNewline()
	printNextStep("Inspect", "planhaus inspect "+written[0])

	return nil
}

// artifactPath builds the output path for one format. With a single format
// the explicit --output path wins; with several, it is used as the base path.
func artifactPath(output, base, format string, multi bool) string {
	ext := "." + format
	if format == pipeline.FormatJSON {
		ext = ".layout.json"
	}
	if output == "" {
		return base + ext
	}
	if multi {
		return strings.TrimSuffix(output, filepath.Ext(output)) + ext
	}
	return output
}
