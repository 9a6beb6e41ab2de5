package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

// challengeCommand creates the challenge generator command.
func (c *CLI) challengeCommand() *cobra.Command {
	var (
		output string
		format string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Generate a balance challenge",
		Long: `Generate a balance challenge.

A challenge fills one side of the board with shapes laid out in a pattern
(grid, pyramid, towers or staircase). Challenge shapes cannot be moved; the
goal is to balance the beam by adding shapes of your own.

Use --seed for a reproducible challenge and --output to save it as a
composition (JSON) or picture (SVG) for 'play', 'add' and 'render'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []composition.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, composition.WithSeed(seed))
			}
			return c.runChallenge(cmd.Context(), output, format, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the challenge to a file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json (default), svg")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a reproducible challenge")

	return cmd
}

func (c *CLI) runChallenge(ctx context.Context, output, format string, opts []composition.Option) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	e, err := newEngine(cfg, opts...)
	if err != nil {
		return err
	}

	ch := e.StartChallenge()
	snap := e.Snapshot()

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Challenge: %s", ch.Pattern)))
	printDetail("Balance the beam using %d shapes in total", ch.Target)
	fmt.Println(shapeTable(snap.Shapes, snap.Board.Fulcrum(), ""))
	printBalance(snap.Balance)

	if output == "" {
		return nil
	}
	if format == "" {
		format = formatFromPath(output, formatJSON)
	}
	return writeSnapshot(ctx, snap, output, format, renderOpts{})
}
