// Package reading annotates address components with their katakana reading.
package reading

import (
	"fmt"
	"strings"

	"address-normalizer/internal/models"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Annotator produces katakana readings with the IPA dictionary. A tokenizer is safe for
// concurrent use, so one Annotator can serve every request.
type Annotator struct {
	kg *tokenizer.Tokenizer
}

// NewAnnotator loads the IPA dictionary. This takes a noticeable moment and a few tens of MB.
func NewAnnotator() (*Annotator, error) {
	kg, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("reading: failed to create tokenizer: %w", err)
	}
	return &Annotator{kg: kg}, nil
}

// Reading returns the katakana reading of text. Tokens the dictionary has no reading for
// (digits, Latin letters, unknown names) are kept as written.
func (a *Annotator) Reading(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, tok := range a.kg.Tokenize(text) {
		if r, ok := tok.Reading(); ok && r != "*" && r != "" {
			b.WriteString(r)
			continue
		}
		b.WriteString(tok.Surface)
	}
	return b.String()
}

// Annotate reads each named component. Block and extension carry numbers and building names,
// which have no useful reading.
func (a *Annotator) Annotate(prefecture, municipality, street, townArea string) models.Readings {
	return models.Readings{
		Prefecture:   a.Reading(prefecture),
		Municipality: a.Reading(municipality),
		Street:       a.Reading(street),
		TownArea:     a.Reading(townArea),
	}
}
