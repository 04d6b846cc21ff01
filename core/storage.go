package core

import (
	"context"
	"io"
)

type (
	// Document is an uploaded file on its way to a DocumentStore. RefID ties
	// the stored object to its owning record; the store generates one when empty.
	Document struct {
		Content     io.Reader
		Filename    string
		ContentType string
		RefID       string
	}

	// DocumentStore persists uploaded documents and exposes them by href.
	// Save returns empty name and href, with no error, when doc is nil or its
	// sanitized filename comes out empty.
	DocumentStore interface {
		Save(ctx context.Context, doc *Document) (name, href string, err error)
	}
)
