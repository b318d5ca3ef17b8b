package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/config"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/store"
)

var (
	flagDBPath    string
	flagQuiet     bool
	flagLogLevel  string
	flagLogFormat string

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:               "budgetflow",
	Short:             "Personal budget planner",
	Long:              "Plan monthly income and spending across categories and scenarios.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Budget database path (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: console or json")
}

// initRuntime loads the config file and configures logging and currency
// formatting before any command runs.
func initRuntime(_ *cobra.Command, _ []string) error {
	loaded, cfgErr := config.Load()
	cfg = loaded

	level := firstNonEmpty(flagLogLevel, cfg.Logging.Level)
	format := firstNonEmpty(flagLogFormat, cfg.Logging.Format)
	if err := setupLogging(os.Stderr, level, format); err != nil {
		return err
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", config.ConfigPath()).Msg("using default configuration")
	}

	cli.SetCurrency(cfg.General.CurrencySymbol, cfg.General.Locale)
	return nil
}

func setupLogging(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	if level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = w
	switch strings.ToLower(format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	log.Logger = log.Output(out).With().Timestamp().Logger()
	return nil
}

// openWorkspace opens the budget database and loads the stored state. The
// returned func closes the database.
func openWorkspace(ctx context.Context) (*budget.Workspace, func(), error) {
	path := flagDBPath
	if path == "" {
		path = config.DBPath(cfg)
	}

	kv, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = kv.Close() }

	ws, err := budget.Open(ctx, store.NewGateway(kv, nil))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if ws.Seeded() {
		infof("  Created a default scenario in %s\n", path)
	}
	return ws, closeFn, nil
}

// activeScenario returns the active scenario of ws.
func activeScenario(ws *budget.Workspace) (model.Scenario, error) {
	s, ok := ws.Active()
	if !ok {
		return model.Scenario{}, budget.ErrNoActiveScenario
	}
	return s, nil
}

// infof prints progress to stderr unless --quiet is set.
func infof(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
