// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package feepolicy

import (
	"sort"
	"strings"

	"github.com/dotandev/xbfee/internal/errors"
	"github.com/hashicorp/go-version"
)

// Entry is a registered strategy and its revision metadata.
type Entry struct {
	Strategy   Strategy
	Version    *version.Version
	Superseded bool
}

// Quote runs the strategy and stamps the result with the entry's version.
func (e Entry) Quote(txCount, amount uint32) (Quote, error) {
	q, err := e.Strategy.Quote(txCount, amount)
	if err != nil {
		return Quote{}, err
	}
	q.Version = e.Version.String()
	return q, nil
}

// Registry holds the selectable strategies. Register is not safe for
// concurrent use; lookups are, once registration is done.
type Registry struct {
	entries     map[string]Entry
	defaultName string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// DefaultRegistry holds the canonical tiered schedule and the two
// superseded count-only schedules.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister(LegacyThreshold(), "0.1.0", true)
	r.mustRegister(LegacyPerTransaction(), "0.2.0", true)
	r.mustRegister(Canonical(), "1.0.0", false)
	r.defaultName = TieredName
	return r
}

func (r *Registry) mustRegister(s Strategy, v string, superseded bool) {
	if err := r.Register(s, v, superseded); err != nil {
		panic(err)
	}
}

// Register adds s under its name. The first registered strategy becomes the
// default until SetDefault is called.
func (r *Registry) Register(s Strategy, v string, superseded bool) error {
	name := s.Name()
	if name == "" {
		return errors.WrapInvalidPolicy("strategy name is required")
	}
	if _, exists := r.entries[name]; exists {
		return errors.WrapInvalidPolicy("duplicate strategy " + name)
	}
	if tp, ok := s.(TieredPolicy); ok {
		if err := tp.Validate(); err != nil {
			return err
		}
	}

	ver, err := version.NewVersion(v)
	if err != nil {
		return errors.WrapInvalidPolicy("bad version for " + name + ": " + err.Error())
	}

	r.entries[name] = Entry{Strategy: s, Version: ver, Superseded: superseded}
	if r.defaultName == "" {
		r.defaultName = name
	}
	return nil
}

func (r *Registry) SetDefault(name string) error {
	if _, ok := r.entries[name]; !ok {
		return errors.WrapUnknownPolicy(name)
	}
	r.defaultName = name
	return nil
}

// Default returns the entry used when no policy is requested.
func (r *Registry) Default() (Entry, error) {
	return r.Lookup(r.defaultName)
}

func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, errors.WrapUnknownPolicy(name)
	}
	return e, nil
}

// Resolve accepts a strategy name or a version constraint such as ">= 1.0".
// A constraint selects the highest matching version. An empty ref selects
// the default.
func (r *Registry) Resolve(ref string) (Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.Default()
	}
	if e, ok := r.entries[ref]; ok {
		return e, nil
	}

	constraints, err := version.NewConstraint(ref)
	if err != nil {
		return Entry{}, errors.WrapUnknownPolicy(ref)
	}

	var best *Entry
	for _, e := range r.entries {
		if !constraints.Check(e.Version) {
			continue
		}
		if best == nil || e.Version.GreaterThan(best.Version) {
			e := e
			best = &e
		}
	}
	if best == nil {
		return Entry{}, errors.WrapUnknownPolicy(ref)
	}
	return *best, nil
}

// List returns all entries ordered by version.
func (r *Registry) List() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Version.LessThan(out[j].Version)
	})
	return out
}
