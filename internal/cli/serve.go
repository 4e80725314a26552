package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"harvest-market/internal/auth"
	"harvest-market/internal/config"
	"harvest-market/internal/seed"
	"harvest-market/internal/server"
	handler "harvest-market/services/market/handler"
	"harvest-market/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port string
	Seed bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the marketplace HTTP server",
		Example: `  harvest-market serve
  STORE_DRIVER=sqlite harvest-market serve --port 9090 --seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "listen port; overrides PORT")
	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "load the demo fixtures before serving")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.shutdown()

	if opts.Seed {
		if _, err := applySeed(ctx, a, ""); err != nil {
			return err
		}
	}

	port := a.cfg.Port
	if opts.Port != "" {
		port = opts.Port
	}

	warnDefaultSecret(a.cfg.Auth)

	gin.SetMode(gin.ReleaseMode)
	h := handler.NewMarketHandler(a.accounts, a.ledger, a.registry, auth.NewIssuer(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL))
	srv := &http.Server{
		Addr:    portAddr(port),
		Handler: server.SetupRouter(h),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		utils.Info("shutting down auction server", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// warnDefaultSecret logs when session tokens are signed with the placeholder secret
func warnDefaultSecret(cfg config.AuthConfig) bool {
	if !cfg.DefaultSecret() {
		return false
	}
	utils.Warn("JWT_SECRET is not set; session tokens are signed with the built-in placeholder secret", map[string]any{
		"setting": "JWT_SECRET",
	})
	return true
}

// applySeed loads fixtures from path, or the embedded demo set when path is empty
func applySeed(ctx context.Context, a *app, path string) (seed.Report, error) {
	fixtures, err := loadFixtures(path)
	if err != nil {
		return seed.Report{}, err
	}
	s := &seed.Seeder{
		Store:      a.store,
		Accounts:   a.accounts,
		Ledger:     a.ledger,
		NewSession: newSessionFunc(a),
	}
	return s.Apply(ctx, fixtures)
}
