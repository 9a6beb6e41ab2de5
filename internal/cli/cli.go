package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/balancecoach/pkg/buildinfo"
	"github.com/matzehuels/balancecoach/pkg/cache"
	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/config"
	"github.com/matzehuels/balancecoach/pkg/feedback"
	"github.com/matzehuels/balancecoach/pkg/feedback/llm"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "balancecoach"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the engine, cache
// and feedback hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Balance Coach teaches visual balance with shapes on a seesaw",
		Long:         `Balance Coach places weighted shapes on an artboard balanced on a central fulcrum, reports how the composition tips, and asks an art coach for feedback.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/balancecoach/config.toml)")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.challengeCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.balanceCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.feedbackCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newEngine creates an engine on the configured board.
func newEngine(cfg config.Config, opts ...composition.Option) (*composition.Engine, error) {
	board, err := cfg.BoardGeometry()
	if err != nil {
		return nil, err
	}
	return composition.New(board, opts...), nil
}

// newCache opens the configured cache backend.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newCoach builds the feedback coach. Without an API key the coach has no
// client and answers every request with the fallback message. The returned
// cache must be closed by the caller.
func (c *CLI) newCoach(ctx context.Context, cfg config.Config, noCache bool) (*feedback.Coach, cache.Cache, error) {
	logger := loggerFromContext(ctx)

	var client llm.Client
	if cfg.Feedback.APIKey != "" {
		var err error
		client, err = llm.New(cfg.Feedback.Provider, llm.Config{
			APIKey:  cfg.Feedback.APIKey,
			Model:   cfg.Feedback.Model,
			BaseURL: cfg.Feedback.BaseURL,
			Timeout: cfg.Feedback.Timeout.Duration,
		})
		if err != nil {
			return nil, nil, err
		}
	} else {
		logger.Debug("no API key configured, feedback will use the fallback message")
	}

	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		logger.Warnf("Cache disabled: %v", err)
		store = cache.NewNullCache()
	}

	opts := []feedback.CoachOption{
		feedback.WithCache(store, cfg.Feedback.CacheTTL.Duration),
		feedback.WithLogger(logger),
	}
	if ns := cfg.Cache.Namespace; ns != "" {
		opts = append(opts, feedback.WithKeyer(cache.NewScopedKeyer(nil, ns+":")))
	}
	if board, err := cfg.BoardGeometry(); err == nil {
		opts = append(opts, feedback.WithBoard(board))
	}
	return feedback.NewCoach(client, opts...), store, nil
}

// openOutput returns stdout for an empty path.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
