// Package limiter trims the record sequence before a grid is built.
package limiter

import "github.com/pkg/errors"

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int `yaml:"limit" toml:"limit"`   // keep at most this many records (0 = unlimited)
	Offset int `yaml:"offset" toml:"offset"` // skip the first N records
	Tail   int `yaml:"tail" toml:"tail"`     // keep only the last N records; excludes Limit
}

// Validate rejects negative values and a Limit combined with a Tail.
// Offset is ignored when Tail is set.
func (c Config) Validate() error {
	if c.Limit < 0 {
		return errors.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return errors.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return errors.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return errors.New("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Bounds returns the [start, end) window the config keeps out of length items.
func (c Config) Bounds(length int) (int, int) {
	if c.Tail > 0 {
		return max(length-c.Tail, 0), length
	}
	start := min(c.Offset, length)
	end := length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}

// Apply returns the limited window of items. The result shares the backing
// array of items.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() || items == nil {
		return items
	}
	start, end := c.Bounds(len(items))
	return items[start:end]
}
