package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/balancecoach/internal/server"
	"github.com/matzehuels/balancecoach/pkg/session"
)

const sessionSweepInterval = time.Minute

// serveCommand creates the HTTP API server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the board HTTP API",
		Long: `Run the board HTTP API.

Each client creates a session holding one board, then adds, moves, rotates,
resizes and shades shapes through JSON requests and polls for coach
feedback. Sessions live in memory and expire after the configured idle time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the feedback cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	board, err := cfg.BoardGeometry()
	if err != nil {
		return err
	}

	coach, store, err := c.newCoach(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions := session.NewMemoryStore(coach, cfg.Server.SessionTTL.Duration)
	go sessions.Run(ctx, sessionSweepInterval, func(removed int) {
		if removed > 0 {
			logger.Debug("expired sessions removed", "count", removed, "live", sessions.Len())
		}
	})

	srv := server.New(sessions, server.WithLogger(logger), server.WithBoard(board))
	return srv.ListenAndServe(ctx, addr)
}
