package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
	pkgio "github.com/matzehuels/balancecoach/pkg/io"
)

// addOpts holds the flags of the add command.
type addOpts struct {
	kind  string
	size  float64
	shade int
	count int
	mode  string
	seed  uint64
}

// addCommand creates the command that places shapes onto a composition file.
func (c *CLI) addCommand() *cobra.Command {
	opts := addOpts{
		kind:  string(composition.KindSquare),
		size:  composition.DefaultSize,
		shade: composition.DefaultShade,
		count: 1,
	}
	cmd := &cobra.Command{
		Use:   "add [composition.json]",
		Short: "Place shapes onto a composition file",
		Long: `Place shapes onto a composition file.

Each shape is dropped at a random free spot: inside the board, above the
floor band, clear of other shapes and not straddling the fulcrum. In
symmetrical mode a mirrored twin is placed on the other side. The file is
created when it does not exist; --mode only applies to new files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd.Context(), args[0], opts, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", opts.kind, "shape kind: square, rectangle")
	cmd.Flags().Float64VarP(&opts.size, "size", "s", opts.size, "long side in pixels (80-200, multiple of 20)")
	cmd.Flags().IntVar(&opts.shade, "shade", opts.shade, "shade level 1 (lightest) to 5 (darkest)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", opts.count, "number of shapes to add")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "mode for a new file: asymmetrical (default), symmetrical")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible placement")

	return cmd
}

func (c *CLI) runAdd(ctx context.Context, path string, opts addOpts, seeded bool) error {
	logger := loggerFromContext(ctx)

	kind, err := composition.ParseKind(opts.kind)
	if err != nil {
		return err
	}
	if err := errors.ValidateGridSize(opts.size, composition.GridUnit, composition.MinSize, composition.MaxSize); err != nil {
		return err
	}
	if err := errors.ValidateShade(opts.shade); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	board, err := cfg.BoardGeometry()
	if err != nil {
		return err
	}

	var engineOpts []composition.Option
	if seeded {
		engineOpts = append(engineOpts, composition.WithSeed(opts.seed))
	}

	e, err := loadOrCreate(path, board, opts.mode, engineOpts)
	if err != nil {
		return err
	}

	added := 0
	for range opts.count {
		if _, err := e.AddShape(kind, opts.size, opts.shade); err != nil {
			if errors.Is(err, errors.ErrCodeNoSpace) {
				printWarning("No space left after %d of %d shapes", added, opts.count)
				break
			}
			return err
		}
		added++
	}
	logger.Debugf("Added %d %s shapes to %s", added, kind, path)

	if err := pkgio.SaveEngine(e, path); err != nil {
		return err
	}
	printSuccess("Added %d %s(s)", added, kind)
	printFile(path)
	printBalance(e.Balance())
	return nil
}

// loadOrCreate opens the composition at path, or starts a fresh board in
// mode when the file does not exist.
func loadOrCreate(path string, board composition.Board, mode string, opts []composition.Option) (*composition.Engine, error) {
	if _, err := os.Stat(path); err == nil {
		if mode != "" {
			return nil, errors.New(errors.ErrCodeInvalidMode, "--mode only applies to new compositions")
		}
		return pkgio.LoadEngine(path, opts...)
	}

	e := composition.New(board, opts...)
	if mode != "" {
		if err := e.SetMode(composition.Mode(mode)); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// balanceCommand creates the command that reports the balance of a file.
func (c *CLI) balanceCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "balance [composition.json]",
		Short: "Report the moments, tilt and status of a composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := pkgio.LoadEngine(args[0])
			if err != nil {
				return err
			}
			snap := e.Snapshot()
			bal := snap.Balance

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(bal)
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("%d shapes, %s mode", len(snap.Shapes), snap.Mode)))
			if len(snap.Shapes) > 0 {
				fmt.Println(shapeTable(snap.Shapes, snap.Board.Fulcrum(), snap.Selected))
			}
			printBalance(bal)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the balance as JSON")

	return cmd
}
