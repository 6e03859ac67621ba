// Package config loads optional specfmt.toml settings: wrap width, tab
// width, atomic-span delimiter families, and verbatim block markers. The
// delimiter set is deliberately data, not code, since markup dialects
// disagree on the exact families.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/domfarolino/specfmt/internal/document"
	"github.com/domfarolino/specfmt/internal/lexer"
	"github.com/domfarolino/specfmt/internal/token"
)

// FileName is the config file searched for, from the target's directory
// upward.
const FileName = "specfmt.toml"

// Config mirrors the specfmt.toml layout.
type Config struct {
	Format FormatConfig  `toml:"format"`
	Spans  []SpanConfig  `toml:"span"`
	Blocks []BlockConfig `toml:"block"`
}

// FormatConfig carries the [format] table.
type FormatConfig struct {
	Wrap     int `toml:"wrap"`
	TabWidth int `toml:"tab-width"`
}

// SpanConfig is one [[span]] table: an atomic delimiter family.
type SpanConfig struct {
	Kind  string `toml:"kind"` // code | tag | ref
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// BlockConfig is one [[block]] table: a verbatim block marker pair.
type BlockConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// Find walks from startDir to the filesystem root looking for specfmt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the config reachable from startDir. The second
// return value is false when no config file exists; that is not an error.
func Load(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	cfg, err := Parse(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Parse decodes one specfmt.toml file.
func Parse(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i, s := range cfg.Spans {
		if s.Open == "" || s.Close == "" {
			return nil, fmt.Errorf("%s: span %d: open and close are required", path, i+1)
		}
		if _, err := spanKind(s.Kind); err != nil {
			return nil, fmt.Errorf("%s: span %d: %w", path, i+1, err)
		}
	}
	for i, b := range cfg.Blocks {
		if b.Open == "" || b.Close == "" {
			return nil, fmt.Errorf("%s: block %d: open and close are required", path, i+1)
		}
	}
	return &cfg, nil
}

// Families converts [[span]] tables into lexer families. An empty list
// returns nil so callers fall back to lexer.DefaultFamilies.
func (c *Config) Families() []lexer.Family {
	if c == nil || len(c.Spans) == 0 {
		return nil
	}
	out := make([]lexer.Family, 0, len(c.Spans))
	for _, s := range c.Spans {
		kind, err := spanKind(s.Kind)
		if err != nil {
			continue // validated at Parse time
		}
		out = append(out, lexer.Family{Kind: kind, Open: s.Open, Close: s.Close})
	}
	return out
}

// BlockMarkers converts [[block]] tables into document block markers. An
// empty list returns nil so callers fall back to document.DefaultBlocks.
func (c *Config) BlockMarkers() []document.BlockMarker {
	if c == nil || len(c.Blocks) == 0 {
		return nil
	}
	out := make([]document.BlockMarker, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		out = append(out, document.BlockMarker{Open: b.Open, Close: b.Close})
	}
	return out
}

func spanKind(name string) (token.Kind, error) {
	switch name {
	case "code", "":
		return token.CodeSpan, nil
	case "tag":
		return token.TagSpan, nil
	case "ref":
		return token.RefSpan, nil
	}
	return token.Invalid, fmt.Errorf("unknown span kind %q (must be code, tag, or ref)", name)
}
