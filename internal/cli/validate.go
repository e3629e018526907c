package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/pkg/geometry"
	"github.com/planhaus/planhaus/pkg/plan"
)

// validateCommand creates the validate command for re-checking exported layouts.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		spacePath string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [layout.json]",
		Short: "Re-validate a previously exported layout",
		Long: `Re-validate a previously exported layout.

The validate command re-runs the constraint checks (bounds, overlaps,
min_distance, adjacency) against the placements recorded in a layout.json
file. When --space points at the original space request, its constraints are
checked too; otherwise only bounds and overlaps apply.

The command exits non-zero when the layout has violations, so it can gate
scripted workflows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], spacePath, strict)
		},
	}

	cmd.Flags().StringVar(&spacePath, "space", "", "space request to validate constraints against")
	cmd.Flags().BoolVar(&strict, "strict", false, "report constraints that reference unknown rooms")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input, spacePath string, strict bool) error {
	logger := loggerFromContext(ctx)

	doc, err := plan.ReadDocumentFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	space, err := validationSpace(doc, spacePath)
	if err != nil {
		return err
	}
	logger.Debugf("Validating %d rooms against %gx%g space",
		len(doc.Rooms), space.Dimensions.Width, space.Dimensions.Height)

	prog := newProgress(logger)
	validator := plan.NewValidator(space)
	if strict {
		validator = plan.NewStrictValidator(space)
	}
	violations := validator.Validate(doc.RoomModels())
	prog.done(fmt.Sprintf("Checked %d rooms", len(doc.Rooms)))

	if len(violations) == 0 {
		printSuccess("Layout is valid (%d rooms)", len(doc.Rooms))
		return nil
	}

	printError("Layout has %d violations", len(violations))
	for _, v := range violations {
		printDetail("%s", v)
	}
	return fmt.Errorf("%d constraint violations", len(violations))
}

// validationSpace builds the space to validate against: the original request
// when provided, otherwise a constraint-free space reconstructed from the
// layout document's dimensions.
func validationSpace(doc plan.Document, spacePath string) (plan.Space, error) {
	if spacePath != "" {
		space, err := plan.ReadSpaceFile(spacePath)
		if err != nil {
			return plan.Space{}, fmt.Errorf("load space %s: %w", spacePath, err)
		}
		return space, nil
	}

	dims, err := geometry.NewDimensions(doc.Dimensions.Width, doc.Dimensions.Height)
	if err != nil {
		return plan.Space{}, fmt.Errorf("layout dimensions: %w", err)
	}
	return plan.Space{Dimensions: dims}, nil
}
