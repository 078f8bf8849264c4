package extract

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// minLineLength is the rune count a cleaned line must exceed to be kept.
const minLineLength = 10

var (
	urlPattern = regexp.MustCompile(`https?://\S+`)
	tagPattern = regexp.MustCompile(`<[^>]+>`)

	// specialCharPattern matches everything outside ASCII letters and digits, the
	// Turkish letters, whitespace and basic punctuation
	specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9çğıöşüÇĞIİÖŞÜ\s\v\p{Zs}.,;:!?()\[\]{}'"-]`)

	spaceRunPattern   = regexp.MustCompile(`[\t\v\f\r \p{Zs}]+`)
	newlineRunPattern = regexp.MustCompile(`\n+`)

	spaceBeforePunctPattern = regexp.MustCompile(` +([.,;:!?])`)
	spaceCollapsePattern    = regexp.MustCompile(` +`)
	lineEdgeSpacePattern    = regexp.MustCompile(`(?m)^ +| +$`)
	blankLinesPattern       = regexp.MustCompile(`\n{3,}`)
)

// CleanText prepares raw text for scoring: it removes URLs, decodes HTML
// entities, strips tags, drops characters outside the Turkish alphabet and
// basic punctuation, collapses whitespace, squeezes characters repeated four
// or more times down to two and drops lines of 10 characters or fewer.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = urlPattern.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = tagPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = specialCharPattern.ReplaceAllString(text, "")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = newlineRunPattern.ReplaceAllString(text, "\n")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = squeezeRepeats(strings.TrimSpace(line))
		if utf8.RuneCountInString(line) > minLineLength {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// squeezeRepeats shortens every run of four or more identical runes to two.
func squeezeRepeats(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		n := j - i
		if n > 3 {
			n = 2
		}
		for range n {
			b.WriteRune(runes[i])
		}
		i = j
	}
	return b.String()
}

// Normalize tidies punctuation spacing and whitespace in cleaned text.
// Spaces before . , ; : ! ? are removed and a space is added after them when
// another character follows on the same line. Runs of spaces collapse to one,
// lines are trimmed and three or more newlines collapse to a blank line.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = spaceBeforePunctPattern.ReplaceAllString(text, "$1")
	text = spaceAfterPunct(text)

	text = spaceCollapsePattern.ReplaceAllString(text, " ")
	text = lineEdgeSpacePattern.ReplaceAllString(text, "")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// spaceAfterPunct inserts a space after sentence punctuation unless a space,
// a newline or the end of the text follows.
func spaceAfterPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range s {
		b.WriteRune(r)
		if !strings.ContainsRune(".,;:!?", r) {
			continue
		}
		next := i + utf8.RuneLen(r)
		if next < len(s) && s[next] != ' ' && s[next] != '\n' {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
