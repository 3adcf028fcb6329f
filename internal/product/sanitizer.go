package product

import (
	"regexp"
	"strings"
)

var (
	sizesLine   = regexp.MustCompile(`(?i)^-?\s*Available sizes?:`)
	linkLine    = regexp.MustCompile(`(?i)^-?\s*Link:\s*https?://`)
	imageLine   = regexp.MustCompile(`(?i)^-?\s*Image:\s*!\[`)
	bareURLLine = regexp.MustCompile(`(?i)^https?://.*$`)

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// Strip removes every span of product-listing syntax from message text and
// returns the remaining prose. The removal set is a superset of everything
// Extract consumes, including the parenthesized header form, so no product
// fragment can leak into displayed text. Prose that merely resembles a
// listing without matching a pattern is preserved exactly.
//
// Callers should apply Strip only when Extract found at least one product;
// the renderer enforces that.
func Strip(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, len(lines))

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case matchHeader(line) != nil,
			sizesLine.MatchString(line),
			linkLine.MatchString(line),
			imageLine.MatchString(line),
			bareURLLine.MatchString(line):
			// Blanked rather than deleted so surrounding prose keeps its
			// spacing until the final collapse.
			cleaned[i] = ""
		default:
			// Inline references can sit inside otherwise ordinary prose.
			s := inlineLink.ReplaceAllString(raw, "")
			s = inlineImage.ReplaceAllString(s, "")
			cleaned[i] = s
		}
	}

	out := strings.Join(cleaned, "\n")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
