// Package splitter peels a cleansed address into its administrative tiers.
//
// The cascade runs three matchers in order: prefecture, municipality, then town-area with its
// trailing block number and building extension. Each matcher consumes a prefix of what the
// previous one left over, so the tiers never overlap and joining them gives back the input.
package splitter

import (
	"address-normalizer/internal/gazetteer"
)

// PartialAddress is the output of the cascade. Empty fields are tiers that were not found.
type PartialAddress struct {
	Prefecture   string
	Municipality string
	Street       string
	TownArea     string
	Block        string
	Extension    string
}

// Joined concatenates the tiers in address order.
func (p PartialAddress) Joined() string {
	return p.Prefecture + p.Municipality + p.Street + p.TownArea + p.Block + p.Extension
}

// Splitter runs the tier cascade. The optional gazetteer is used to cross-check the syntactic
// matchers; a nil store gives purely syntactic splitting.
type Splitter struct {
	store *gazetteer.Store
	rules []Rule
}

// New returns a splitter using the default municipality rules, preceded by a gazetteer lookup
// when store is not nil.
func New(store *gazetteer.Store) *Splitter {
	var rules []Rule
	if store != nil {
		rules = append(rules, GazetteerRule(store))
	}
	return NewWithRules(store, append(rules, DefaultRules()...))
}

// NewWithRules returns a splitter trying rules in the given order.
func NewWithRules(store *gazetteer.Store, rules []Rule) *Splitter {
	return &Splitter{store: store, rules: rules}
}

// Split decomposes a cleansed address. It never fails: an address where neither prefecture
// nor municipality is recognised comes back entirely as Extension.
func (s *Splitter) Split(normalized string) PartialAddress {
	var p PartialAddress

	p.Prefecture, normalized = s.matchPrefecture(normalized)
	p.Municipality, normalized = s.matchMunicipality(p.Prefecture, normalized)

	if p.Prefecture == "" && p.Municipality == "" {
		p.Extension = normalized
		return p
	}

	t := s.splitTownArea(p.Prefecture, p.Municipality, normalized)
	p.Street, p.TownArea, p.Block, p.Extension = t.street, t.townArea, t.block, t.extension
	return p
}

// matchPrefecture drops a syntactic prefecture match the gazetteer does not know when the text
// instead starts with a known municipality (太宰府市 is not the prefecture 太宰府).
func (s *Splitter) matchPrefecture(text string) (string, string) {
	pref, rest := MatchPrefecture(text)
	if pref == "" || s.store == nil || s.store.HasPrefecture(pref) {
		return pref, rest
	}
	if _, ok := s.store.LongestMunicipality(text); ok {
		return "", text
	}
	return pref, rest
}

func (s *Splitter) matchMunicipality(prefecture, text string) (string, string) {
	for _, r := range s.rules {
		if m, ok := r.Match(prefecture, text); ok && m != "" {
			return m, text[len(m):]
		}
	}
	return "", text
}

// prefectures returns the prefectures a town-area lookup should search.
func (s *Splitter) prefectures(prefecture, municipality string) []string {
	if s.store == nil || municipality == "" {
		return nil
	}
	if prefecture != "" {
		return []string{prefecture}
	}
	return s.store.CandidatePrefectures(municipality)
}
