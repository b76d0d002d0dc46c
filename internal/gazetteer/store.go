// Package gazetteer holds the in-memory index of valid administrative names.
//
// A Store is built once from gazetteer records and is read-only afterwards, so a single
// instance can be shared by any number of goroutines without locking.
package gazetteer

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"address-normalizer/internal/models"
	"address-normalizer/internal/normalize"
)

// node is one level of the prefecture → municipality → street-or-town-area → leaf tree.
// Children are keyed by the normalized label; label keeps the text as it appeared in the data.
type node struct {
	label    string
	children map[string]*node
}

func newNode(label string) *node {
	return &node{label: label, children: make(map[string]*node)}
}

func (n *node) ensure(key, label string) *node {
	c, ok := n.children[key]
	if !ok {
		c = newNode(label)
		n.children[key] = c
	}
	return c
}

// Store is the gazetteer index plus the municipality → prefecture reverse index.
type Store struct {
	root    *node
	cities  map[string][]string
	records int
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	onMalformed func(error)
}

// WithSkipMalformed makes Build skip records it cannot index instead of failing. fn, if not
// nil, receives the *MalformedRecordError for each skipped record.
func WithSkipMalformed(fn func(error)) Option {
	return func(o *buildOptions) {
		if fn == nil {
			fn = func(error) {}
		}
		o.onMalformed = fn
	}
}

// Build indexes entries. By default the first malformed record aborts the build with a
// *MalformedRecordError.
func Build(entries iter.Seq[models.GazetteerEntry], opts ...Option) (*Store, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{root: newNode(""), cities: make(map[string][]string)}
	i := 0
	for e := range entries {
		if err := s.insert(i, e); err != nil {
			if o.onMalformed == nil {
				return nil, err
			}
			o.onMalformed(err)
		}
		i++
	}
	return s, nil
}

func (s *Store) insert(i int, e models.GazetteerEntry) error {
	pref := normalize.Cleanse(e.Prefecture)
	muni := normalize.Cleanse(e.Municipality)
	switch {
	case pref == "" && muni == "":
		return &MalformedRecordError{Index: i, Entry: e, Reason: "missing prefecture and municipality"}
	case pref == "":
		return &MalformedRecordError{Index: i, Entry: e, Reason: "missing prefecture"}
	}

	prefNode := s.root.ensure(pref, e.Prefecture)
	s.records++
	if muni == "" {
		return nil
	}
	n := prefNode.ensure(muni, e.Municipality)
	// spellings of one prefecture share a key; the first label seen is kept
	if !slices.ContainsFunc(s.cities[muni], func(p string) bool { return normalize.Cleanse(p) == pref }) {
		s.cities[muni] = append(s.cities[muni], prefNode.label)
	}

	// Kyoto-style rows hang the town-area under its street; everywhere else the chome is the leaf.
	tiers := []string{e.TownArea, e.Chome}
	if strings.TrimSpace(e.Street) != "" {
		tiers = []string{e.Street, e.TownArea}
	}
	for _, label := range tiers {
		key := normalize.Cleanse(label)
		if key == "" {
			break
		}
		n = n.ensure(key, label)
	}
	return nil
}

// Len returns the number of records indexed.
func (s *Store) Len() int {
	return s.records
}

// Prefectures returns the canonical labels of every indexed prefecture, sorted.
func (s *Store) Prefectures() []string {
	out := make([]string, 0, len(s.root.children))
	for _, c := range s.root.children {
		out = append(out, c.label)
	}
	slices.Sort(out)
	return out
}

// HasPrefecture reports whether prefecture is indexed.
func (s *Store) HasPrefecture(prefecture string) bool {
	_, ok := s.root.children[normalize.Cleanse(prefecture)]
	return ok
}

func (s *Store) walk(path ...string) *node {
	n := s.root
	for _, p := range path {
		c, ok := n.children[normalize.Cleanse(p)]
		if !ok {
			return nil
		}
		n = c
	}
	return n
}

// LookupPath reports whether prefecture → municipality → tail... exists. Empty tail elements
// are ignored.
func (s *Store) LookupPath(prefecture, municipality string, tail ...string) bool {
	if prefecture == "" || municipality == "" {
		return false
	}
	path := []string{prefecture, municipality}
	for _, t := range tail {
		if t != "" {
			path = append(path, t)
		}
	}
	return s.walk(path...) != nil
}

// Canonical returns the label of the node at path as it appeared in the gazetteer data.
func (s *Store) Canonical(path ...string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	n := s.walk(path...)
	if n == nil {
		return "", false
	}
	return n.label, true
}

// ContainsTownArea reports whether townArea exists under the municipality, either directly or
// below one of its streets.
func (s *Store) ContainsTownArea(prefecture, municipality, townArea string) bool {
	if townArea == "" {
		return false
	}
	m := s.walk(prefecture, municipality)
	if m == nil {
		return false
	}
	key := normalize.Cleanse(townArea)
	if _, ok := m.children[key]; ok {
		return true
	}
	for _, street := range m.children {
		if _, ok := street.children[key]; ok {
			return true
		}
	}
	return false
}

// CandidatePrefectures returns the prefectures containing a municipality with this name, in
// load order. Unknown municipalities yield an empty slice.
func (s *Store) CandidatePrefectures(municipality string) []string {
	return slices.Clone(s.cities[normalize.Cleanse(municipality)])
}

// LongestChild returns the longest child key of the node at path that is a prefix of text.
// text is expected in normalized form.
func (s *Store) LongestChild(text string, path ...string) (string, bool) {
	n := s.walk(path...)
	if n == nil {
		return "", false
	}
	return longestPrefix(text, func(key string) bool {
		_, ok := n.children[key]
		return ok
	})
}

// LongestMunicipality returns the longest known municipality name, in any prefecture, that is
// a prefix of text.
func (s *Store) LongestMunicipality(text string) (string, bool) {
	return longestPrefix(text, func(key string) bool {
		_, ok := s.cities[key]
		return ok
	})
}

func longestPrefix(text string, known func(string) bool) (string, bool) {
	for end := len(text); end > 0; end-- {
		if end < len(text) && !utf8.RuneStart(text[end]) {
			continue
		}
		if known(text[:end]) {
			return text[:end], true
		}
	}
	return "", false
}
