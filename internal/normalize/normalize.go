// Package normalize cleanses free-form Japanese address text into the canonical form used by
// the gazetteer keys and the tier splitter.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// symbolRemover drops punctuation that carries no address information. U+3099 is what a
	// standalone voiced sound mark (゛) decomposes to under NFKC.
	symbolRemover = strings.NewReplacer(
		".", "", ",", "", "。", "", "、", "", ":", "", "・", "",
		"*", "", "゛", "", "\u3099", "", "'", "", "_", "", "/", "", "+", "",
	)

	// annotationPatterns remove bracketed notes such as "(注:要確認)". Each pair is matched
	// non-greedily from an opening bracket to the first closing one after it; an opening bracket
	// with no closing partner is left as is.
	annotationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)【.*?】`),
		regexp.MustCompile(`(?s)≪.*?≫`),
		regexp.MustCompile(`(?s)《.*?》`),
		regexp.MustCompile(`(?s)〔.*?〕`),
		regexp.MustCompile(`(?s)\[.*?\]`),
		regexp.MustCompile(`(?s)<.*?>`),
		regexp.MustCompile(`(?s)\(.*?\)`),
		regexp.MustCompile(`(?s)「.*?」`),
	}

	landUnitPattern = regexp.MustCompile(`大字|小字|字`)

	canonicalizer = strings.NewReplacer(
		"ケ", "ヶ",
		"之", "の",
		"ノ", "の",
		"通り", "通",
		"通リ", "通",
		"上ル", "上る",
		"下ル", "下る",
	)
)

// Cleanse returns the canonical form of an address string. It never fails: characters it does
// not know about pass through unchanged. Cleanse(Cleanse(s)) == Cleanse(s).
func Cleanse(s string) string {
	// full-width to half-width, half-width kana to full-width, ① to 1, ㈱ to (株)
	s = norm.NFKC.String(s)

	s = symbolRemover.Replace(s)
	s = removeSpaces(s)

	s = strings.Map(upperLatin, s)

	for _, re := range annotationPatterns {
		s = re.ReplaceAllString(s, "")
	}

	s = landUnitPattern.ReplaceAllString(s, "")

	for {
		next := canonicalizer.Replace(s)
		if next == s {
			break
		}
		s = next
	}
	s = floorMarker(s)

	s = removeSpaces(s)

	// deletions can leave a base letter next to a combining mark
	if !norm.NFKC.IsNormalString(s) {
		s = norm.NFKC.String(s)
	}
	return s
}

// floorMarker rewrites a trailing F (5F) as 階.
func floorMarker(s string) string {
	if strings.HasSuffix(s, "F") {
		return strings.TrimSuffix(s, "F") + "階"
	}
	return s
}

func upperLatin(r rune) rune {
	if unicode.Is(unicode.Latin, r) {
		return unicode.ToUpper(r)
	}
	return r
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
