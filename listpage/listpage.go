// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listpage

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/shopdesk/tabs"
)

var (
	ErrUnknownList   = errors.New("unknown list")
	ErrInvalidConfig = errors.New("invalid list configuration")
)

// Config describes one list screen
type Config struct {
	Name           string
	Title          string
	Path           string
	Table          string
	PageSize       int
	Statuses       []tabs.StatusDescriptor
	EmptyTitle     string
	EmptyHint      string
	NoResultsTitle string
}

// Validate checks everything a page render depends on
func (c Config) Validate() error {
	if c.Name == "" || c.Path == "" || c.Table == "" {
		return fmt.Errorf("%w: name, path and table are required", ErrInvalidConfig)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: %s: page size must be positive", ErrInvalidConfig, c.Name)
	}
	if err := tabs.ValidateStatuses(c.Statuses); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.Name, err)
	}
	return nil
}

// HasStatus reports whether key is one of the configured statuses
func (c Config) HasStatus(key string) bool {
	for _, s := range c.Statuses {
		if s.Key == key {
			return true
		}
	}
	return false
}

// Registry maps list names to their configuration
type Registry struct {
	lists map[string]Config
	order []string
}

func NewRegistry(configs ...Config) (*Registry, error) {
	r := &Registry{lists: make(map[string]Config, len(configs))}
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.lists[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate list %q", ErrInvalidConfig, c.Name)
		}
		r.lists[c.Name] = c
		r.order = append(r.order, c.Name)
	}
	return r, nil
}

// Lookup returns the named list or ErrUnknownList
func (r *Registry) Lookup(name string) (Config, error) {
	c, ok := r.lists[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return c, nil
}

// Configs returns all lists in registration order
func (r *Registry) Configs() []Config {
	out := make([]Config, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.lists[name])
	}
	return out
}
