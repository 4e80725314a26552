package cli

import (
	"fmt"
	"os"

	"harvest-market/internal/accounts"
	"harvest-market/internal/seed"
	"harvest-market/internal/session"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo producers, purchasers and listings",
		Long: `Register the fixture accounts and open an auction per fixture listing.
Existing accounts and listings are skipped, so seeding is safe to repeat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer a.shutdown()

			report, err := applySeed(cmd.Context(), a, opts.File)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "producers: %d, purchasers: %d, auctions: %d, skipped: %d\n",
				report.Producers, report.Purchasers, report.Auctions, report.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML fixture file (default: built-in demo data)")

	return cmd
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return seed.Parse(f)
}

func newSessionFunc(a *app) func() accounts.Session {
	return func() accounts.Session { return session.NewManager(a.store, a.policy) }
}
