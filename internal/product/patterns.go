package product

import "regexp"

// headerPattern recognizes a numbered-list line that announces a new product.
// Patterns are tried in order and the first match wins for a given line.
// Capture groups: 1 item number, 2 name, 3 description, 4 price.
type headerPattern struct {
	name string
	re   *regexp.Regexp
}

// The three surface syntaxes the assistant is known to produce. The list is
// the contractual minimum, not an exhaustive grammar; new forms slot in here.
var headerPatterns = []headerPattern{
	// "1. Name - Description. Price: $XX.XX"
	{"dot-price", regexp.MustCompile(`(?i)^(\d+)\.\s+(.+?)\s+-\s+(.+?)\.\s+Price:\s+\$?([\d,]+\.?\d*)`)},
	// "1. Name - Description - Price: $XX.XX" (optionally "- $YY.YY" range)
	{"dash-price", regexp.MustCompile(`(?i)^(\d+)\.\s+(.+?)\s+-\s+(.+?)\s+-\s+Price:\s+\$?([\d,]+\.?\d*(?:\s*-\s*\$?[\d,]+\.?\d*)?)`)},
	// "1. Name (Description) - Price: $XX.XX"
	{"paren-price", regexp.MustCompile(`(?i)^(\d+)\.\s+(.+?)\s+\(([^)]+)\)\s+-\s+Price:\s+\$?([\d,]+\.?\d*)`)},
}

var (
	// A captured price may carry a trailing range ("10.00 - $15.00"); only
	// the first bound is kept.
	priceRangeSuffix = regexp.MustCompile(`\s*-.*$`)

	inlineLink  = regexp.MustCompile(`(?i)\[View Product\]\((https?://[^)]+)\)`)
	inlineImage = regexp.MustCompile(`!\[[^\]]*\]\((https?://[^)]+)\)`)

	labeledLink   = regexp.MustCompile(`(?i)^(?:-\s*)?Link:\s*(https?://\S+)`)
	storefrontURL = regexp.MustCompile(`(?i)^(https?://(?:www\.)?tentree\.com/products/\S+)`)

	labeledImage = regexp.MustCompile(`(?i)(?:-\s*)?Image:\s*!\[[^\]]*\]\((https?://[^)]+)\)`)
	assetURL     = regexp.MustCompile(`(?i)^(https?://cdn\.shopify\.com/\S+)`)
)

// Continuation-field candidates, in priority order. Every pattern captures
// the URL as group 1.
var (
	linkCandidates  = []*regexp.Regexp{labeledLink, inlineLink, storefrontURL}
	imageCandidates = []*regexp.Regexp{labeledImage, inlineImage, assetURL}
)

// matchHeader returns the submatches of the first header pattern that
// matches the line, or nil if the line is not a product header.
func matchHeader(line string) []string {
	for _, hp := range headerPatterns {
		if m := hp.re.FindStringSubmatch(line); m != nil {
			return m
		}
	}
	return nil
}

// firstMatch tries candidates in order and returns the first captured URL.
func firstMatch(candidates []*regexp.Regexp, line string) string {
	for _, re := range candidates {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}
