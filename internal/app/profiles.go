package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meridian-systems/accountpulse/internal/alerting"
	"github.com/meridian-systems/accountpulse/internal/behavior"
	"github.com/meridian-systems/accountpulse/internal/config"
	"github.com/meridian-systems/accountpulse/internal/health"
	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/portfolio"
	"github.com/meridian-systems/accountpulse/internal/risk"
	"github.com/meridian-systems/accountpulse/internal/store"
)

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newEvaluator builds an evaluator from the configured weights,
// thresholds, and lifecycle table.
func newEvaluator(cfg *config.Config) *portfolio.Evaluator {
	return &portfolio.Evaluator{
		Health:   health.NewEngine(cfg.Weights, cfg.Stages()),
		Risk:     risk.NewEngine(),
		Behavior: behavior.NewScorer(cfg.Stages()),
		Alerts:   alerting.NewEngine(cfg.Thresholds),
	}
}

// loadProfile resolves a command argument to a profile: a readable path
// is parsed as JSON, anything else is looked up in the store by id.
func loadProfile(cfg *config.Config, arg string) (*model.CustomerProfile, error) {
	if _, err := os.Stat(arg); err == nil {
		return readProfileFile(arg)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	p, err := db.GetCustomer(arg)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no file or stored customer %q", arg)
	}
	return p, nil
}

func readProfileFile(path string) (*model.CustomerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p model.CustomerProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := model.Validate(&p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

// readProfilesFile parses a JSON array of profiles.
func readProfilesFile(path string) ([]*model.CustomerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var profiles []*model.CustomerProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, p := range profiles {
		if err := model.Validate(p); err != nil {
			return nil, fmt.Errorf("%s: profile %d: %w", path, i, err)
		}
	}
	return profiles, nil
}

// displayName prefers the customer name, falling back to the id.
func displayName(p *model.CustomerProfile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
