// Package cli wires the harvest-market command line: the HTTP server and the
// demo data loader.
package cli

import (
	"context"
	"fmt"
	"time"

	"harvest-market/internal/accounts"
	"harvest-market/internal/config"
	"harvest-market/internal/ledger"
	"harvest-market/internal/repository"
	"harvest-market/internal/schema"
	"harvest-market/internal/session"
	"harvest-market/utils"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver   string
	LogLevel string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "harvest-market",
		Short: "Farmer-to-buyer produce auction marketplace",
		Long: `harvest-market runs the produce auction backend: producer and purchaser
accounts, listings, auctions and bids over a pluggable document store.

Configuration is read from the environment (PORT, STORE_DRIVER, JWT_SECRET, ...);
flags override selected values.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "store", "", "storage driver (memory|dir|redis|sqlite|mongo); overrides STORE_DRIVER")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level; overrides LOG_LEVEL")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// app is the assembled marketplace core shared by every command
type app struct {
	cfg      *config.Config
	store    *repository.Store
	accounts *accounts.Service
	ledger   *ledger.Ledger
	registry *session.Registry
	policy   session.Policy
	close    func() error
}

func loadApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Driver != "" {
		cfg.Store.Driver = opts.Driver
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	utils.SetLevel(cfg.LogLevel)

	m, closeFn, err := cfg.Store.OpenMedium(ctx)
	if err != nil {
		return nil, err
	}

	store := repository.NewStore(m, cfg.Store.Namespace, schema.StoreOptions()...)
	policy := session.Policy{MinCredentialLength: cfg.Auth.MinCredentialLength}

	utils.Info("store opened", map[string]any{
		"driver":    cfg.Store.Driver,
		"namespace": cfg.Store.Namespace,
	})

	return &app{
		cfg:      cfg,
		store:    store,
		accounts: accounts.NewService(store),
		ledger:   ledger.NewLedger(store, nil),
		registry: session.NewRegistry(store, policy, session.WithTTL(cfg.Auth.TokenTTL)),
		policy:   policy,
		close:    closeFn,
	}, nil
}

func (a *app) shutdown() {
	if err := a.close(); err != nil {
		utils.Warn("store close failed", map[string]any{"error": err.Error()})
	}
}

const shutdownTimeout = 10 * time.Second

func portAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}
