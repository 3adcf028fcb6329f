package product

import "testing"

func TestStrip_SingleProductLine(t *testing.T) {
	text := "1. Trail Jacket - Waterproof shell. Price: $129.99. [View Product](https://tentree.com/products/trail-jacket) ![Image](https://cdn.shopify.com/img1.jpg)"

	if got := Strip(text); got != "" {
		t.Errorf("Strip() = %q, want empty string", got)
	}
}

func TestStrip_MixedProseAndProduct(t *testing.T) {
	text := "Here are my favorites for hiking:\n" +
		"\n" +
		"1. Trail Jacket - Waterproof shell. Price: $129.99\n" +
		"Link: https://tentree.com/products/trail-jacket\n" +
		"Image: ![Image](https://cdn.shopify.com/img1.jpg)\n" +
		"- Available sizes: S, M, L\n" +
		"\n" +
		"Let me know if you want more options!"

	want := "Here are my favorites for hiking:\n\nLet me know if you want more options!"
	if got := Strip(text); got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStrip_RemovesEveryHeaderForm(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"dot price form", "1. Trail Jacket - Waterproof shell. Price: $129.99"},
		{"dash price form", "1. Basic Tee - Soft cotton - Price: $10.00 - $15.00"},
		{"parenthesized form", "2. Beanie (Cozy ribbed knit) - Price: $18.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip("intro\n" + tt.line + "\noutro"); got != "intro\n\noutro" {
				t.Errorf("Strip() = %q, header line survived", got)
			}
		})
	}
}

func TestStrip_RemovesListingLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"available sizes", "- Available sizes: S, M, L"},
		{"available size singular", "Available size: M"},
		{"link label", "Link: https://tentree.com/products/hat"},
		{"dashed link label", "- Link: https://tentree.com/products/hat"},
		{"image label", "Image: ![Image](https://cdn.shopify.com/img.jpg)"},
		{"bare url", "https://cdn.shopify.com/img.jpg"},
		{"url with trailing text", "https://tentree.com/products/hat check it out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strip("before\n" + tt.line + "\nafter"); got != "before\n\nafter" {
				t.Errorf("Strip() = %q, listing line survived", got)
			}
		})
	}
}

func TestStrip_RemovesURLLinesConsumedByExtract(t *testing.T) {
	// A URL line with trailing text is still a link continuation for the
	// extractor, so the sanitizer must remove the whole line.
	text := "1. Sun Hat - Wide brim. Price: $24.99\n" +
		"https://tentree.com/products/hat check it out\n" +
		"![Image](https://cdn.shopify.com/hat.jpg)"

	products := Extract(text)
	if len(products) != 1 || products[0].Link != "https://tentree.com/products/hat" {
		t.Fatalf("Extract() = %+v, want the url line consumed as link", products)
	}
	if got := Strip(text); got != "" {
		t.Errorf("Strip() = %q, consumed link line survived", got)
	}
}

func TestStrip_RemovesInlineReferencesInsideProse(t *testing.T) {
	text := "Take a look at [View Product](https://tentree.com/products/hat) and tell me what you think ![Image](https://cdn.shopify.com/hat.jpg)"

	want := "Take a look at  and tell me what you think"
	if got := Strip(text); got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStrip_CollapsesBlankRuns(t *testing.T) {
	text := "first paragraph\n\n\n\n\nsecond paragraph"

	want := "first paragraph\n\nsecond paragraph"
	if got := Strip(text); got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStrip_PreservesProseThatResemblesListings(t *testing.T) {
	// Looks product-ish but matches no pattern: no price, no markdown.
	text := "1. Think about fit\n2. Think about fabric\nMost hats run small."

	if got := Strip(text); got != text {
		t.Errorf("Strip() = %q, want unchanged text", got)
	}
}

func TestStrip_Idempotent(t *testing.T) {
	text := "Intro prose.\n\n1. Trail Jacket - Waterproof shell. Price: $129.99\nLink: https://tentree.com/products/trail-jacket\n\nOutro prose."

	once := Strip(text)
	twice := Strip(once)

	if once != twice {
		t.Errorf("Strip not idempotent: %q vs %q", once, twice)
	}
}
