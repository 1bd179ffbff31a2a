// Package config parses the declarative YAML security definition. The
// definition populates the security builder: path patterns to ignore,
// exact URLs to permit unconditionally, and authorization rules binding
// path patterns to access attributes.
//
// Example:
//
//	ignore:
//	  - /static/**
//	  - /favicon.ico
//	permit-all:
//	  - /health
//	  - /login
//	rules:
//	  - path: /admin/**
//	    attributes: ["hasRole('ADMIN')"]
//	  - path: /**
//	    attributes: ["authenticated"]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule binds a path pattern to the access attributes applying to the
// requests it matches. Rules are evaluated in declaration order, first
// match wins.
type Rule struct {
	Path       string   `yaml:"path"`
	Exact      bool     `yaml:"exact"`
	Attributes []string `yaml:"attributes"`
}

// Config is the parsed security definition.
type Config struct {
	Ignore    []string `yaml:"ignore"`
	PermitAll []string `yaml:"permit-all"`
	Rules     []Rule   `yaml:"rules"`
}

// Parse decodes and validates a security definition. Unknown fields are
// a validation error.
func Parse(doc []byte) (*Config, error) {
	d := yaml.NewDecoder(bytes.NewReader(doc))
	d.KnownFields(true)

	var c Config
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid security definition: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// ParseFile reads and parses a security definition file.
func ParseFile(path string) (*Config, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(doc)
}

func (c *Config) validate() error {
	for i, p := range c.Ignore {
		if p == "" {
			return fmt.Errorf("ignore entry %d: empty pattern", i)
		}
	}

	for i, r := range c.Rules {
		if r.Path == "" {
			return fmt.Errorf("rule %d: missing path", i)
		}

		if len(r.Attributes) == 0 {
			return fmt.Errorf("rule %d (%s): missing attributes", i, r.Path)
		}
	}

	return nil
}
