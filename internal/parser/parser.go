// Package parser decomposes free-form Japanese addresses into AddressRecords.
package parser

import (
	"address-normalizer/internal/disambiguate"
	"address-normalizer/internal/gazetteer"
	"address-normalizer/internal/models"
	"address-normalizer/internal/normalize"
	"address-normalizer/internal/splitter"
)

// Parser composes the normalizer, the tier splitter and the disambiguator. It holds no
// per-call state and is safe for concurrent use once constructed.
type Parser struct {
	store    *gazetteer.Store
	splitter *splitter.Splitter
	resolver *disambiguate.Disambiguator
}

// New returns a Parser over store, resolving same-named municipalities with table.
// store may be nil for purely syntactic parsing.
func New(store *gazetteer.Store, table disambiguate.Table) *Parser {
	return &Parser{
		store:    store,
		splitter: splitter.New(store),
		resolver: disambiguate.New(store, table),
	}
}

// Parse decomposes raw with a Parser using the default override table.
func Parse(raw string, store *gazetteer.Store) models.AddressRecord {
	return New(store, disambiguate.DefaultTable()).Parse(raw)
}

// Cleanse returns the normalized form of raw.
func (p *Parser) Cleanse(raw string) string {
	return normalize.Cleanse(raw)
}

// CandidatePrefectures returns the prefectures that contain a municipality named municipality.
func (p *Parser) CandidatePrefectures(municipality string) []string {
	if p.store == nil {
		return nil
	}
	return p.store.CandidatePrefectures(municipality)
}

// Parse decomposes raw. It never fails; an ambiguous municipality is reported in the
// record's Err field with every other tier still filled in.
func (p *Parser) Parse(raw string) models.AddressRecord {
	normalized := normalize.Cleanse(raw)
	parts := p.splitter.Split(normalized)

	rec := models.AddressRecord{
		Address:           raw,
		NormalizedAddress: normalized,
		Prefecture:        parts.Prefecture,
		Municipality:      parts.Municipality,
		Street:            parts.Street,
		TownArea:          parts.TownArea,
		Block:             parts.Block,
		Extension:         parts.Extension,
	}

	if rec.Prefecture == "" && rec.Municipality != "" {
		rec.Prefecture, rec.Err = p.resolver.Resolve(rec.Municipality, disambiguate.Hints{
			Street:   rec.Street,
			TownArea: rec.TownArea,
		})
	}

	rec.NormalizedPrefecture = normalize.Prefecture(rec.Prefecture)
	rec.NormalizedMunicipality = normalize.Municipality(rec.Municipality)
	rec.NormalizedStreet = normalize.Street(rec.Street)
	rec.NormalizedTownArea = normalize.TownArea(rec.TownArea)
	rec.NormalizedBlock = normalize.Block(rec.Block)
	rec.NormalizedExtension = normalize.Extension(rec.Extension)
	return rec
}
