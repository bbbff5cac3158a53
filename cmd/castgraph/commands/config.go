package commands

import (
	"github.com/teranos/castgraph/am"
	"github.com/teranos/castgraph/errors"
)

// loadConfig loads and validates the configuration, returning a copy the
// caller may override with flags
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.WithHint(
			errors.Mark(errors.Wrap(err, "failed to load config"), errors.ErrInvalidConfig),
			"run 'castgraph am validate' to locate the problem",
		)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := *cfg
	c.Ingest.Roles = append([]string(nil), cfg.Ingest.Roles...)
	return &c, nil
}
