package am

import (
	"strings"

	"github.com/teranos/castgraph/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errors.Mark(err, errors.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validate() error {
	// Max line bytes: 0 = use default, negative = invalid
	if c.Input.MaxLineBytes < 0 {
		return errors.Newf("input.max_line_bytes must be >= 0, got %d", c.Input.MaxLineBytes)
	}

	for i, role := range c.Ingest.Roles {
		if strings.TrimSpace(role) == "" {
			return errors.Newf("ingest.roles[%d] cannot be empty", i)
		}
		if strings.Contains(role, ",") {
			return errors.Newf("ingest.roles[%d] cannot contain a comma, got %q", i, role)
		}
	}

	if strings.ContainsAny(c.Ingest.UnknownMarker, "\t\n") {
		return errors.Newf("ingest.unknown_marker cannot contain tabs or newlines, got %q", c.Ingest.UnknownMarker)
	}

	if c.Ingest.ProgressIntervalSeconds < 0 {
		return errors.Newf("ingest.progress_interval_seconds must be >= 0, got %d", c.Ingest.ProgressIntervalSeconds)
	}

	// Workers: 0 = sequential (same as 1), negative = invalid
	if c.Build.Workers < 0 {
		return errors.Newf("build.workers must be >= 0, got %d", c.Build.Workers)
	}

	if c.EntitiesPath() == c.GraphPath() {
		return errors.Newf("output.entities_file and output.graph_file must differ, both are %q", c.EntitiesPath())
	}

	if c.Resources.MinAvailableMiB < 0 {
		return errors.Newf("resources.min_available_mib must be >= 0, got %d", c.Resources.MinAvailableMiB)
	}

	return nil
}
