package service

import (
	"context"
	"errors"
	"fmt"

	"address-normalizer/internal/models"
)

var (
	// ErrEmptyInput is returned when the address or municipality to look up is empty.
	ErrEmptyInput = errors.New("service: input cannot be empty")
	// ErrReadingDisabled is returned when readings are requested but no annotator is configured.
	ErrReadingDisabled = errors.New("service: readings are not enabled")
)

// AddressService contains the business logic around the address decomposition engine
type AddressService struct {
	parser    AddressParser
	annotator ReadingAnnotator
}

// AddressParser is the decomposition engine
type AddressParser interface {
	Parse(raw string) models.AddressRecord
	Cleanse(raw string) string
	CandidatePrefectures(municipality string) []string
}

// ReadingAnnotator produces kana readings of address components
type ReadingAnnotator interface {
	Annotate(prefecture, municipality, street, townArea string) models.Readings
}

// NewAddressService creates a new address service. annotator may be nil, which disables readings.
func NewAddressService(parser AddressParser, annotator ReadingAnnotator) *AddressService {
	return &AddressService{parser: parser, annotator: annotator}
}

// Parse decomposes address. An ambiguous municipality is not an error here: the record is
// returned with its Error field set.
func (s *AddressService) Parse(ctx context.Context, address string, withReading bool) (models.ParseResult, error) {
	if address == "" {
		return models.ParseResult{}, ErrEmptyInput
	}
	if withReading && s.annotator == nil {
		return models.ParseResult{}, ErrReadingDisabled
	}
	if err := ctx.Err(); err != nil {
		return models.ParseResult{}, fmt.Errorf("service: parse cancelled: %w", err)
	}

	rec := s.parser.Parse(address)
	result := models.ParseResult{AddressRecord: rec}
	if rec.Err != nil {
		result.Error = rec.Err.Error()
	}
	if withReading {
		r := s.annotator.Annotate(rec.Prefecture, rec.Municipality, rec.Street, rec.TownArea)
		result.Readings = &r
	}
	return result, nil
}

// Cleanse returns the normalized form of address.
func (s *AddressService) Cleanse(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("service: cleanse cancelled: %w", err)
	}
	return s.parser.Cleanse(address), nil
}

// Prefectures returns every prefecture containing a municipality with the given name,
// in gazetteer order. The result is empty, not nil, for unknown names.
func (s *AddressService) Prefectures(ctx context.Context, municipality string) ([]string, error) {
	if municipality == "" {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("service: lookup cancelled: %w", err)
	}
	prefectures := s.parser.CandidatePrefectures(municipality)
	if prefectures == nil {
		prefectures = []string{}
	}
	return prefectures, nil
}
