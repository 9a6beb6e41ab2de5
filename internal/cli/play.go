package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/feedback"
	pkgio "github.com/matzehuels/balancecoach/pkg/io"
)

// playCommand creates the interactive board command.
func (c *CLI) playCommand() *cobra.Command {
	var (
		mode    string
		save    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "play [composition.json]",
		Short: "Arrange shapes on an interactive board",
		Long: `Arrange shapes on an interactive board in the terminal.

Shapes are placed on a seesaw: the beam below the board tips toward the
heavier side. Drag shapes with the mouse or with the cursor keys and space,
add squares and rectangles, change their size and shade, and ask the coach
for feedback. In symmetrical mode every new shape gets a mirrored twin.

An optional composition file is loaded as the starting board; --save writes
the final board when you quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPlay(cmd.Context(), input, mode, save, noCache)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "starting mode: asymmetrical (default), symmetrical")
	cmd.Flags().StringVar(&save, "save", "", "write the board to this file on exit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the feedback cache")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, input, mode, save string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var e *composition.Engine
	if input != "" {
		e, err = pkgio.LoadEngine(input)
	} else {
		e, err = newEngine(cfg)
	}
	if err != nil {
		return err
	}
	if mode != "" {
		if err := e.SetMode(composition.Mode(mode)); err != nil {
			return err
		}
	}

	coach, store, err := c.newCoach(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	model := newPlayModel(ctx, e, feedback.NewAnalyzer(coach))
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(os.Stderr),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}

	if save != "" {
		if err := pkgio.SaveEngine(e, save); err != nil {
			return err
		}
		printSuccess("Saved board")
		printFile(save)
	}
	return nil
}
