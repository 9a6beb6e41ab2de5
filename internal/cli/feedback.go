package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/balancecoach/pkg/io"
)

// feedbackCommand creates the command that asks the coach about a file.
func (c *CLI) feedbackCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "feedback [composition.json]",
		Short: "Ask the art coach about a composition",
		Long: `Ask the art coach about a composition.

The coach looks at each shape's size, shade and side of the fulcrum together
with the balance status, and gives a short encouraging critique with one
tip. Set ANTHROPIC_API_KEY (or GEMINI_API_KEY with provider "gemini" in the
config file) to reach a model; without a key a fixed message is shown.
Answers are cached per composition.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFeedback(cmd.Context(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the feedback cache")

	return cmd
}

func (c *CLI) runFeedback(ctx context.Context, input string, noCache bool) error {
	e, err := pkgio.LoadEngine(input)
	if err != nil {
		return err
	}
	snap := e.Snapshot()
	if len(snap.Shapes) == 0 {
		printWarning("Add some shapes before asking for feedback")
		return nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	coach, store, err := c.newCoach(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	spin := newSpinner(ctx, "Asking the coach...")
	spin.Start()
	text := coach.Analyze(ctx, snap)
	spin.Stop()
	if spin.Cancelled() {
		return ctx.Err()
	}

	fmt.Println(StyleTitle.Render("Coach") + "  " + statusStyle(snap.Balance.Status).Render(string(snap.Balance.Status)))
	fmt.Println(styleCoach.Width(76).Render(text))
	return nil
}
