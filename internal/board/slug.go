package board

import (
	"strings"
	"unicode"
)

// Slugify derives a column key from a title: lower-cased, with every run of
// characters that are not letters or digits collapsed into one hyphen and
// no leading or trailing hyphen. "Follow-up  Needed!" becomes
// "follow-up-needed".
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
