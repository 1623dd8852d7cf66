package filter

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// htmlKeywordMark wraps a matched keyword for inline highlighting.
const htmlKeywordMark = "<mark>%s</mark>"

var titleCaser = cases.Title(language.Und)

// ContainsAny reports whether s contains any of the keywords,
// case-insensitively.
func ContainsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(s, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// MarkKeywords highlights every case-insensitive keyword occurrence in s
// with an inline mark. The replacement carries the capitalized keyword, so a
// case-insensitive search for the keyword afterwards still finds every
// original occurrence. Returns whether anything matched, and the marked
// text.
func MarkKeywords(s string, keywords []string) (bool, string) {
	marked := s
	found := false
	for _, keyword := range keywords {
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(keyword))
		if err != nil {
			continue
		}
		replacement := fmt.Sprintf(htmlKeywordMark, titleCaser.String(keyword))
		count := 0
		marked = re.ReplaceAllStringFunc(marked, func(string) string {
			count++
			return replacement
		})
		found = found || count > 0
	}
	return found, marked
}
