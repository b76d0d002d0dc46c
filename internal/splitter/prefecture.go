package splitter

import "regexp"

var prefecturePattern = regexp.MustCompile(`^(?:[^\x00-\x7F]{2,3}県|..府|東京都|北海道)`)

// MatchPrefecture splits a leading prefecture name off text. When there is none it returns
// an empty prefecture and text unchanged.
func MatchPrefecture(text string) (prefecture, rest string) {
	loc := prefecturePattern.FindStringIndex(text)
	if loc == nil {
		return "", text
	}
	return text[:loc[1]], text[loc[1]:]
}
