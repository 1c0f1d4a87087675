package rules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/apertium/apgrep/internal/types"
)

// File is a named, ordered rule set stored as YAML or TOML.
type File struct {
	Name    string     `yaml:"name" toml:"name"`
	Dialect string     `yaml:"dialect,omitempty" toml:"dialect,omitempty"`
	Rules   []FileRule `yaml:"rules" toml:"rules"`
}

// FileRule is one entry of a rule set. Pattern and Replacement are
// whitespace-separated unit lists.
type FileRule struct {
	Name        string `yaml:"name,omitempty" toml:"name,omitempty"`
	Pattern     string `yaml:"pattern" toml:"pattern"`
	Replacement string `yaml:"replacement" toml:"replacement"`
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a rule set. Files ending in .toml are decoded as TOML,
// anything else as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &f, nil
}

// Compile turns the rule set into validated rules for dialect. A rule set
// that names a different dialect is rejected.
func (f *File) Compile(dialect types.Dialect) ([]types.Rule, error) {
	if f.Dialect != "" {
		d, err := types.ParseDialect(f.Dialect)
		if err != nil {
			return nil, fmt.Errorf("rule set %q: %w", f.Name, err)
		}
		if d != dialect {
			return nil, fmt.Errorf("rule set %q is for %s, not %s", f.Name, d, dialect)
		}
	}

	rules := make([]types.Rule, 0, len(f.Rules))
	for i, fr := range f.Rules {
		name := fr.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", f.Name, i+1)
		}
		rule := types.Rule{
			Name:   name,
			Source: strings.Fields(fr.Pattern),
			Target: strings.Fields(fr.Replacement),
		}
		if err := Validate(dialect, rule); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Template returns the rule set written by "apgrep init".
func Template() *File {
	return &File{
		Name:    "apgrep",
		Dialect: types.Lexd.String(),
		Rules: []FileRule{
			{
				Name:        "rename noun tag",
				Pattern:     "<n>",
				Replacement: "<noun>",
			},
		},
	}
}

// Write stores the rule set at path, as TOML or YAML depending on the
// extension.
func Write(path string, f *File) error {
	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return err
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
