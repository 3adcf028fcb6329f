// Package render projects messages into display content for the
// presentation layer.
package render

import (
	"github.com/rokovo/widgetd/internal/product"
	"github.com/rokovo/widgetd/internal/session"
)

// Projection is the display form of one message: prose safe to render
// directly, plus any product cards recovered from it.
type Projection struct {
	Text     string            `json:"text"`
	Products []product.Product `json:"products,omitempty"`
}

// Project derives the display content for a message. It is a pure function
// of message content: extraction is recomputed on every call and never
// stored back onto the message, so re-rendering cannot drift.
func Project(msg session.Message) Projection {
	if msg.Role != session.RoleAssistant {
		return Projection{Text: msg.Content}
	}

	products := product.Extract(msg.Content)
	if len(products) == 0 {
		// Nothing matched: leave the prose untouched rather than risk
		// deleting text that merely resembles a listing.
		return Projection{Text: msg.Content}
	}

	return Projection{
		Text:     product.Strip(msg.Content),
		Products: products,
	}
}
