package splitter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"address-normalizer/internal/normalize"
)

const (
	numberRun  = `(?:\d+|[` + normalize.KanjiDigits + `]+)`
	bridge     = `(?:丁目|丁|番地|番|号|-|‐|ー|−|の|東|西|南|北)`
	bridgeLast = `(?:丁目|丁|番地|番|号)`

	numericStart = "0123456789" + normalize.KanjiDigits
)

var (
	// blockPattern matches a chome/lot/number run: it starts with a number, may continue with
	// numbers and connectors, and ends on a number or a terminal connector.
	blockPattern = regexp.MustCompile(numberRun + `(?:(?:` + numberRun + `|` + bridge + `{1,2})*(?:` + numberRun + `|` + bridgeLast + `))?`)

	// streetPattern matches the Kyoto street-name tier, e.g. 寺町通御池上る or 四条通烏丸東入.
	streetPattern = regexp.MustCompile(`^.+?通.*(?:上る|下る|東入る|西入る|東入ル|西入ル|東入|西入)`)

	arabicDigit       = regexp.MustCompile(`\d`)
	terminalConnector = regexp.MustCompile(`丁目|丁|番地|番|号|-|‐|ー|−`)
)

type townAreaParts struct {
	street    string
	townArea  string
	block     string
	extension string
}

func (s *Splitter) splitTownArea(prefecture, municipality, text string) townAreaParts {
	var t townAreaParts

	t.street, text = s.matchStreet(prefecture, municipality, text)

	if name, ok := s.knownTownArea(prefecture, municipality, t.street, text); ok {
		t.townArea = name
		text = text[len(name):]
		if loc := blockPattern.FindStringIndex(text); loc != nil && loc[0] == 0 {
			t.block = text[:loc[1]]
			text = text[loc[1]:]
		}
		t.extension = text
		return t
	}

	loc := findBlock(text)
	if loc == nil {
		t.townArea = text
		return t
	}
	t.townArea = text[:loc[0]]
	t.block = text[loc[0]:loc[1]]
	t.extension = text[loc[1]:]
	return t
}

func (s *Splitter) matchStreet(prefecture, municipality, text string) (string, string) {
	for _, pref := range s.prefectures(prefecture, municipality) {
		if key, ok := s.store.LongestChild(text, pref, municipality); ok && streetPattern.MatchString(key) {
			return key, text[len(key):]
		}
	}
	loc := streetPattern.FindStringIndex(text)
	if loc == nil {
		return "", text
	}
	return text[:loc[1]], text[loc[1]:]
}

func (s *Splitter) knownTownArea(prefecture, municipality, street, text string) (string, bool) {
	var best string
	for _, pref := range s.prefectures(prefecture, municipality) {
		path := []string{pref, municipality}
		if street != "" {
			path = append(path, street)
		}
		if key, ok := s.store.LongestChild(text, path...); ok && len(key) > len(best) {
			best = key
		}
	}
	return best, best != ""
}

// findBlock picks the block number inside a town-area remainder: the first run that holds an
// Arabic digit or a Kanji numeral with a connector. Bare Kanji numerals belong to names such as
// 六本木 or 三田 and are skipped, as are 一番町 and 八丁堀 style names.
func findBlock(text string) []int {
	for _, loc := range blockPattern.FindAllStringIndex(text, -1) {
		if isBlock(text, loc) {
			return loc
		}
	}
	return nil
}

func isBlock(text string, loc []int) bool {
	run, rest := text[loc[0]:loc[1]], text[loc[1]:]
	if arabicDigit.MatchString(run) {
		return true
	}
	if !terminalConnector.MatchString(run) {
		return false
	}
	if next, _ := utf8.DecodeRuneInString(rest); next == '町' || next == '村' {
		return false
	}
	// 八丁堀: a bare 丁 with more name after it
	if strings.HasSuffix(run, "丁") && rest != "" && !strings.ContainsRune(numericStart, firstRune(rest)) {
		return false
	}
	return true
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

