// Package seed loads demo producers, purchasers and listings from YAML.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"harvest-market/internal/accounts"
	"harvest-market/internal/ledger"
	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/utils"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultFixtures []byte

// Account is one producer or purchaser to register
type Account struct {
	Email    string         `yaml:"email"`
	Password string         `yaml:"password"`
	Profile  map[string]any `yaml:"profile"`
}

// Listing is one listing to open as an auction
type Listing struct {
	Producer    string         `yaml:"producer"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Quantity    float64        `yaml:"quantity"`
	Unit        string         `yaml:"unit"`
	BasePrice   float64        `yaml:"basePrice"`
	Attributes  map[string]any `yaml:"attributes,omitempty"`
}

// Fixtures is the root of a seed file
type Fixtures struct {
	Producers  []Account `yaml:"producers"`
	Purchasers []Account `yaml:"purchasers"`
	Listings   []Listing `yaml:"listings"`
}

// Default returns the embedded demo fixtures.
func Default() (*Fixtures, error) {
	return Parse(strings.NewReader(string(defaultFixtures)))
}

// Parse decodes fixtures from r.
func Parse(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: parse fixtures: %w", err)
	}
	return &f, nil
}

// Report counts what Apply created and skipped
type Report struct {
	Producers  int
	Purchasers int
	Auctions   int
	Skipped    int
}

// Seeder writes fixtures through the account and ledger services
type Seeder struct {
	Store    repository.DocumentStore
	Accounts *accounts.Service
	Ledger   *ledger.Ledger
	// NewSession returns a fresh anonymous session per account.
	NewSession func() accounts.Session
}

// Apply registers every account and opens every listing. Accounts and
// listings that already exist are skipped, so Apply can run repeatedly.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (Report, error) {
	var report Report
	producerIDs := make(map[string]string, len(f.Producers))

	for _, a := range f.Producers {
		id, created, err := s.account(ctx, models.RoleProducer, a)
		if err != nil {
			return report, err
		}
		producerIDs[strings.ToLower(a.Email)] = id
		if created {
			report.Producers++
		} else {
			report.Skipped++
		}
	}

	for _, a := range f.Purchasers {
		_, created, err := s.account(ctx, models.RolePurchaser, a)
		if err != nil {
			return report, err
		}
		if created {
			report.Purchasers++
		} else {
			report.Skipped++
		}
	}

	for _, l := range f.Listings {
		producerID, ok := producerIDs[strings.ToLower(l.Producer)]
		if !ok {
			return report, fmt.Errorf("seed: listing %q references unknown producer %s", l.Title, l.Producer)
		}

		exists, err := s.listingExists(ctx, producerID, l.Title)
		if err != nil {
			return report, err
		}
		if exists {
			report.Skipped++
			continue
		}

		extra, err := models.NewFields(l.Attributes)
		if err != nil {
			return report, fmt.Errorf("seed: listing %q: %w", l.Title, err)
		}
		if _, _, err := s.Ledger.OpenAuction(ctx, producerID, ledger.Listing{
			Title:       l.Title,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			BasePrice:   l.BasePrice,
			Extra:       extra,
		}); err != nil {
			return report, fmt.Errorf("seed: listing %q: %w", l.Title, err)
		}
		report.Auctions++
	}

	utils.Info("seed: fixtures applied", map[string]any{
		"producers":  report.Producers,
		"purchasers": report.Purchasers,
		"auctions":   report.Auctions,
		"skipped":    report.Skipped,
	})
	return report, nil
}

// account registers a, or logs in when it already exists, returning the principal id
func (s *Seeder) account(ctx context.Context, role models.Role, a Account) (string, bool, error) {
	profile, err := models.NewFields(a.Profile)
	if err != nil {
		return "", false, fmt.Errorf("seed: %s: %w", a.Email, err)
	}

	sess := s.NewSession()
	defer sess.EndSession()

	var res models.Resolution
	if role == models.RoleProducer {
		res, err = s.Accounts.RegisterProducer(ctx, sess, a.Email, a.Password, profile)
	} else {
		res, err = s.Accounts.RegisterPurchaser(ctx, sess, a.Email, a.Password, profile)
	}
	if err == nil {
		return res.PrincipalID, true, nil
	}
	if !errors.Is(err, marketerrors.ErrIdentifierTaken) {
		return "", false, fmt.Errorf("seed: register %s: %w", a.Email, err)
	}

	res, err = s.Accounts.Login(ctx, sess, a.Email, a.Password)
	if err != nil {
		return "", false, fmt.Errorf("seed: %s exists with other credentials: %w", a.Email, err)
	}
	if res.Role != role {
		return "", false, fmt.Errorf("seed: %s is a %s: %w", a.Email, res.Role, marketerrors.ErrRoleConflict)
	}
	utils.Debug("seed: account exists", map[string]any{"email": a.Email, "role": string(role)})
	return res.PrincipalID, false, nil
}

func (s *Seeder) listingExists(ctx context.Context, producerID, title string) (bool, error) {
	docs, err := s.Store.Query(ctx, models.CollectionListings, "producerId", models.String(producerID))
	if err != nil {
		return false, fmt.Errorf("seed: check listings: %w", err)
	}
	for _, d := range docs {
		if d.StringField("title") == title {
			return true, nil
		}
	}
	return false, nil
}
