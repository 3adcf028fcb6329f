// Package product recovers structured product records from free-form
// assistant text. The producer is a language model, so the extraction is
// best-effort: multiple surface syntaxes are tolerated, false positives are
// dropped silently, and the companion sanitizer removes everything the
// extractor could have consumed so the remaining prose displays cleanly.
package product

import "strings"

// Product is a single recommendation recovered from a message. Link and
// Image may be empty individually, but a record is only ever emitted with at
// least one of them set.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Link        string `json:"link,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Extract scans one assistant message for product listings and returns the
// records in source order. It is pure: the same text always yields the same
// output, and nothing is stored between calls.
func Extract(text string) []Product {
	var products []Product
	var current *Product

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if m := matchHeader(line); m != nil {
			// A new header flushes the open accumulator, but only if it
			// qualified: a listing with neither link nor image is a false
			// positive (an ordinary numbered list item) and is dropped.
			if current != nil && qualifies(current) {
				products = append(products, *current)
			}
			current = &Product{
				Name:        strings.TrimSpace(m[2]),
				Description: strings.TrimSpace(m[3]),
				Price:       priceRangeSuffix.ReplaceAllString(strings.TrimSpace(m[4]), ""),
			}
			// The header line may carry the complete record inline.
			if lm := inlineLink.FindStringSubmatch(line); lm != nil {
				current.Link = strings.TrimSpace(lm[1])
			}
			if im := inlineImage.FindStringSubmatch(line); im != nil {
				current.Image = strings.TrimSpace(im[1])
			}
			continue
		}

		if current == nil {
			continue
		}

		// Continuation lines supply missing fields. First writer wins: a
		// field set on an earlier line is never overwritten.
		if current.Link == "" {
			if url := firstMatch(linkCandidates, line); url != "" {
				current.Link = strings.TrimSpace(url)
			}
		}
		if current.Image == "" {
			if url := firstMatch(imageCandidates, line); url != "" {
				current.Image = strings.TrimSpace(url)
			}
		}
	}

	if current != nil && qualifies(current) {
		products = append(products, *current)
	}

	return products
}

// qualifies reports whether an accumulator may be emitted.
func qualifies(p *Product) bool {
	return p.Link != "" || p.Image != ""
}
