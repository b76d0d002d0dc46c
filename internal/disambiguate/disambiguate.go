// Package disambiguate resolves a municipality name to a single prefecture when the same name
// exists in more than one prefecture.
package disambiguate

import (
	"fmt"
	"slices"
	"strings"

	"address-normalizer/internal/gazetteer"
	"address-normalizer/internal/normalize"
)

// AmbiguousMunicipalityError is reported when a municipality name belongs to several
// prefectures and the override table has no entry for it.
type AmbiguousMunicipalityError struct {
	Municipality string
	Candidates   []string
}

func (e *AmbiguousMunicipalityError) Error() string {
	return fmt.Sprintf("disambiguate: municipality %q exists in several prefectures: %s",
		e.Municipality, strings.Join(e.Candidates, ", "))
}

// Table maps a municipality name to its prefectures in priority order. The first prefecture
// is the default when the town-area gives no better evidence.
type Table map[string][]string

// DefaultTable returns the conflicts between same-named cities: 府中市 (東京都, 広島県) and
// 伊達市 (北海道, 福島県). Tokyo and Hokkaido take precedence.
func DefaultTable() Table {
	return Table{
		"府中市": {"東京都", "広島県"},
		"伊達市": {"北海道", "福島県"},
	}
}

// Merge returns a copy of t with the entries of other added, other winning on conflicts.
func (t Table) Merge(other Table) Table {
	merged := make(Table, len(t)+len(other))
	for k, v := range t {
		merged[k] = slices.Clone(v)
	}
	for k, v := range other {
		merged[k] = slices.Clone(v)
	}
	return merged
}

// Hints carries the tiers already extracted from the address.
type Hints struct {
	Street   string
	TownArea string
}

// Disambiguator resolves municipality names against the gazetteer.
type Disambiguator struct {
	store *gazetteer.Store
	table Table
}

// New returns a Disambiguator. store may be nil, in which case every municipality is unknown.
func New(store *gazetteer.Store, table Table) *Disambiguator {
	normalized := make(Table, len(table))
	for k, v := range table {
		normalized[normalize.Municipality(k)] = slices.Clone(v)
	}
	return &Disambiguator{store: store, table: normalized}
}

// Resolve returns the prefecture owning municipality. An unknown municipality yields an empty
// prefecture and no error.
func (d *Disambiguator) Resolve(municipality string, hints Hints) (string, error) {
	if d.store == nil || municipality == "" {
		return "", nil
	}

	candidates := d.store.CandidatePrefectures(municipality)
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	}

	priority, ok := d.table[normalize.Municipality(municipality)]
	if !ok {
		return "", &AmbiguousMunicipalityError{Municipality: municipality, Candidates: candidates}
	}

	var ordered []string
	for _, p := range priority {
		if slices.Contains(candidates, p) {
			ordered = append(ordered, p)
		}
	}
	if len(ordered) == 0 {
		return "", &AmbiguousMunicipalityError{Municipality: municipality, Candidates: candidates}
	}

	// a town-area found under exactly one candidate outranks the default
	var owners []string
	for _, p := range ordered {
		if d.owns(p, municipality, hints) {
			owners = append(owners, p)
		}
	}
	if len(owners) == 1 {
		return owners[0], nil
	}
	return ordered[0], nil
}

func (d *Disambiguator) owns(prefecture, municipality string, hints Hints) bool {
	if hints.Street != "" {
		return d.store.LookupPath(prefecture, municipality, hints.Street, hints.TownArea)
	}
	return d.store.ContainsTownArea(prefecture, municipality, hints.TownArea)
}
