// Command fintrack reports on and exports the finance data of any configured
// store from the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/store"
)

var version = "dev"

// cli carries the per-invocation settings shared by every subcommand.
type cli struct {
	v   *viper.Viper
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance reports from the command line",
		Long: `fintrack reads the transactions and budgets of the configured store and
prints monthly reports or exports transactions as CSV.

Store settings come from the same environment variables as the API server.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.initConfig,
	}
	root.SetOut(out)

	root.PersistentFlags().String("backend", "", "store backend (postgres, sqlite, mongo, local); defaults to STORE_BACKEND")
	root.PersistentFlags().String("month", "", "month to report on (YYYY-MM); defaults to the current month")
	root.PersistentFlags().String("format", "text", "output format (text, json, csv)")
	_ = c.v.BindPFlag("backend", root.PersistentFlags().Lookup("backend"))
	_ = c.v.BindPFlag("month", root.PersistentFlags().Lookup("month"))
	_ = c.v.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	_ = c.v.BindEnv("backend", "STORE_BACKEND")

	root.AddCommand(c.reportCmd())
	root.AddCommand(c.exportCmd())
	root.AddCommand(c.seedCmd())
	root.AddCommand(versionCmd(out))
	return root
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) initConfig(_ *cobra.Command, _ []string) error {
	switch f := c.v.GetString("format"); f {
	case formatText, formatJSON, formatCSV:
	default:
		return fmt.Errorf("invalid format: %s", f)
	}
	return nil
}

// openStore opens the configured store, honouring --backend.
func (c *cli) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if backend := c.v.GetString("backend"); backend != "" {
		cfg.StoreBackend = backend
	}
	return database.Open(ctx, database.NewConfig(cfg))
}

func versionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(out, "fintrack %s\n", version)
		},
	}
}
