package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/pkg/errors"
	"github.com/planhaus/planhaus/pkg/pipeline"
	"github.com/planhaus/planhaus/pkg/plan"
	"github.com/planhaus/planhaus/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path
	format      string  // output format: "svg", "txt", "dot"
	scale       float64 // SVG pixels per space unit
	grid        bool    // draw a unit grid in the floor plan
	constraints bool    // render the constraint graph instead of the floor plan
}

// renderCommand creates the render command for turning computed layouts into
// floor plans and reports.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: pipeline.FormatSVG,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a computed layout as a floor plan or report",
		Long: `Render a computed layout as a floor plan or report.

The render command takes a layout.json file (produced by 'plan') and renders
it as a floor-plan SVG or a plain-text summary. With --constraints it instead
takes a space.json request and renders the constraint relationships between
rooms as a graph diagram (DOT or Graphviz-rendered SVG).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRenderFormat(opts); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), txt, dot")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "SVG pixels per space unit")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw a unit grid in the floor plan")
	cmd.Flags().BoolVar(&opts.constraints, "constraints", false, "render the constraint graph from a space request")

	return cmd
}

// validateRenderFormat checks the format against the rendering mode. The dot
// format only exists for constraint graphs, and txt only for layouts.
func validateRenderFormat(opts renderOpts) error {
	switch opts.format {
	case pipeline.FormatSVG:
		return nil
	case pipeline.FormatDOT:
		if !opts.constraints {
			return fmt.Errorf("format dot requires --constraints")
		}
		return nil
	case pipeline.FormatText:
		if opts.constraints {
			return fmt.Errorf("format txt renders layouts, not constraint graphs")
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be 'svg', 'txt', or 'dot')", opts.format)
	}
}

// runRender dispatches to the layout or constraint-graph renderer.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	var (
		data []byte
		err  error
	)
	if opts.constraints {
		data, err = renderConstraints(ctx, input, opts)
	} else {
		data, err = renderLayout(ctx, input, opts)
	}
	if err != nil {
		return err
	}

	path := outputPath(opts.output, input, "."+opts.format)
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	logger.Infof("Generated %s", path)
	printSuccess("Rendered %s", opts.format)
	printFile(path)
	return nil
}

// renderLayout renders a layout document as a floor-plan SVG or text summary.
func renderLayout(ctx context.Context, input string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	doc, err := plan.ReadDocumentFile(input)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", input, err)
	}
	logger.Debugf("Loaded layout: %d rooms, score %.2f", len(doc.Rooms), doc.Metrics.Score)

	switch opts.format {
	case pipeline.FormatText:
		return []byte(render.Summary(doc)), nil
	default:
		svgOpts := []render.SVGOption{render.WithScale(opts.scale)}
		if opts.grid {
			svgOpts = append(svgOpts, render.WithGrid())
		}
		return render.FloorPlanSVG(doc, svgOpts...), nil
	}
}

// renderConstraints renders a space request's constraint graph.
func renderConstraints(ctx context.Context, input string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	space, err := plan.ReadSpaceFile(input)
	if err != nil {
		return nil, fmt.Errorf("load space %s: %w", input, err)
	}
	logger.Debugf("Loaded space: %d rooms, %d constraints", len(space.Rooms), len(space.Constraints))

	dot := render.ConstraintDOT(space)
	if opts.format == pipeline.FormatDOT {
		return []byte(dot), nil
	}

	logger.Info("Rendering constraint graph SVG")
	return render.DiagramSVG(dot)
}
