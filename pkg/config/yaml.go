package config

import (
	"bytes"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML encodes c as a YAML document. CLI-only fields are omitted. A nil
// Config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	if !strings.HasSuffix(header, "\n") {
		header += "\n"
	}
	return append([]byte(header+"\n"), body...), nil
}

// FromYAML decodes a configuration layer. Absent fields stay zero so the
// layer can be merged over another.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{Kinds: map[string]uint16{}}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Kinds == nil {
		cfg.Kinds = map[string]uint16{}
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Kinds = maps.Clone(c.Kinds)
	clone.Dump.ShowTrivia = cloneBool(c.Dump.ShowTrivia)
	clone.Stats.ByKind = cloneBool(c.Stats.ByKind)
	return &clone
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
