package splitter

import (
	"regexp"
	"sort"
	"strings"

	"address-normalizer/internal/gazetteer"
)

// Rule recognises a municipality name at the start of text. prefecture is the already matched
// prefecture, possibly empty.
type Rule interface {
	Name() string
	Match(prefecture, text string) (string, bool)
}

// NamedExceptionCities are cities whose names the generic rules would cut short or run past,
// e.g. 四日市市 (ends in 市 twice) or 大和郡山市 (contains 郡).
var NamedExceptionCities = []string{
	"旭川", "伊達", "石狩", "盛岡", "奥州", "田村", "南相馬", "那須塩原", "東村山", "武蔵村山",
	"羽村", "十日町", "上越", "富山", "野々市", "大町", "蒲郡", "四日市", "姫路", "大和郡山",
	"廿日市", "下松", "岩国", "田川", "大村",
}

// NamedExceptionTowns are towns and villages inside a district whose own name ends in 町 or 村
// before the real suffix, e.g. 佐波郡玉村町 and 杵島郡大町町.
var NamedExceptionTowns = []string{"玉村", "大町"}

// DefaultRules returns the syntactic municipality rules in priority order. The generic rule
// is last because it accepts everything the earlier ones do and would cut them short.
func DefaultRules() []Rule {
	return []Rule{
		NamedCityRule(NamedExceptionCities),
		DistrictRule(NamedExceptionTowns),
		PatternRule("city-ward", `^.+?市.+?区`),
		PatternRule("generic", `^.+?[市区町村]`),
	}
}

type patternRule struct {
	name string
	re   *regexp.Regexp
}

// PatternRule matches municipalities with an anchored regular expression.
func PatternRule(name, expr string) Rule {
	return patternRule{name: name, re: regexp.MustCompile(expr)}
}

func (r patternRule) Name() string { return r.name }

func (r patternRule) Match(_, text string) (string, bool) {
	loc := r.re.FindStringIndex(text)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	return text[:loc[1]], true
}

// NamedCityRule matches "<name>市" for each of names.
func NamedCityRule(names []string) Rule {
	return PatternRule("named-city", `^(?:`+alternation(names)+`)市`)
}

// DistrictRule matches "<district>郡<town>町" and "<district>郡<village>村". Town names listed
// in exceptions are tried before the shortest-match fallback.
func DistrictRule(exceptions []string) Rule {
	inner := `.+?`
	if len(exceptions) > 0 {
		inner = alternation(exceptions) + `|.+?`
	}
	return PatternRule("district", `^.+?郡(?:`+inner+`)[町村]`)
}

func alternation(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	// longest first so that a name never loses to its own prefix
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return strings.Join(quoted, "|")
}

type gazetteerRule struct {
	store *gazetteer.Store
}

// GazetteerRule matches the longest municipality known to the gazetteer, restricted to the
// prefecture when one was found.
func GazetteerRule(store *gazetteer.Store) Rule {
	return gazetteerRule{store: store}
}

func (gazetteerRule) Name() string { return "gazetteer" }

func (r gazetteerRule) Match(prefecture, text string) (string, bool) {
	if prefecture != "" {
		return r.store.LongestChild(text, prefecture)
	}
	return r.store.LongestMunicipality(text)
}
