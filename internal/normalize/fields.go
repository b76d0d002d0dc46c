package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// KanjiDigits is the closed set of Kanji numeral characters recognised in block numbers.
const KanjiDigits = "一二三四五六七八九十百千万"

var (
	kanjiRunPattern = regexp.MustCompile(`[` + KanjiDigits + `]+`)

	blockConnectors = strings.NewReplacer(
		"丁目", "-",
		"丁", "-",
		"番地", "-",
		"番", "-",
		"号", "-",
		"の", "-",
		"‐", "-",
		"ー", "-",
		"−", "-",
	)

	repeatedHyphens = regexp.MustCompile(`-{2,}`)

	// adjacent numbers in different scripts, e.g. 3五
	arabicThenKanji = regexp.MustCompile(`(\d)([` + KanjiDigits + `])`)
	kanjiThenArabic = regexp.MustCompile(`([` + KanjiDigits + `])(\d)`)
)

// Prefecture normalizes an extracted prefecture name.
func Prefecture(s string) string { return Cleanse(s) }

// Municipality normalizes an extracted municipality name.
func Municipality(s string) string { return Cleanse(s) }

// Street normalizes an extracted Kyoto street-name tier.
func Street(s string) string { return Cleanse(s) }

// TownArea normalizes an extracted town-area name.
func TownArea(s string) string { return Cleanse(s) }

// Extension normalizes building and floor text.
func Extension(s string) string { return Cleanse(s) }

// Block rewrites a chome/lot/number run into hyphen-joined Arabic numbers, so that
// "一丁目2番3号", "1丁目2-3" and "1-2-3" all normalize to "1-2-3".
func Block(s string) string {
	s = Cleanse(s)
	if s == "" {
		return s
	}
	s = arabicThenKanji.ReplaceAllString(s, "$1-$2")
	s = kanjiThenArabic.ReplaceAllString(s, "$1-$2")
	s = kanjiRunPattern.ReplaceAllStringFunc(s, func(run string) string {
		return strconv.Itoa(KanjiNumber(run))
	})
	s = blockConnectors.Replace(s)
	s = repeatedHyphens.ReplaceAllString(s, "-")
	return floorMarker(strings.Trim(s, "-"))
}

// KanjiNumber converts a run of Kanji numerals to its value. Runs without any of the unit
// characters 十百千万 are read positionally ("一二" is 12).
func KanjiNumber(run string) int {
	if !strings.ContainsAny(run, "十百千万") {
		n := 0
		for _, r := range run {
			n = n*10 + kanjiDigit(r)
		}
		return n
	}

	total, section, digit := 0, 0, 0
	for _, r := range run {
		switch r {
		case '十', '百', '千':
			if digit == 0 {
				digit = 1
			}
			section += digit * kanjiUnit(r)
			digit = 0
		case '万':
			n := section + digit
			if n == 0 {
				n = 1
			}
			total += n * 10000
			section, digit = 0, 0
		default:
			digit = kanjiDigit(r)
		}
	}
	return total + section + digit
}

func kanjiDigit(r rune) int {
	return strings.IndexRune("〇一二三四五六七八九", r) / len("〇")
}

func kanjiUnit(r rune) int {
	switch r {
	case '十':
		return 10
	case '百':
		return 100
	default:
		return 1000
	}
}
