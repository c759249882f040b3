// Package source defines the document-collection API the typed accessors
// lazily populate the cache from. The cache treats it as an opaque
// collaborator; collection and field names are caller configuration.
package source

import "context"

// Document is one plain JSON-serializable record.
type Document = map[string]any

type Source interface {
	// GetByID returns the document with the given id, or nil without an
	// error when it does not exist.
	GetByID(ctx context.Context, collection, id string) (Document, error)

	// QueryByOwner returns every document whose ownership field equals
	// ownerID.
	QueryByOwner(ctx context.Context, collection, field, ownerID string) ([]Document, error)
}

// Writer is implemented by sources that also accept documents; used for
// seeding and by the migration tooling to write backfilled fields.
type Writer interface {
	Put(ctx context.Context, collection string, doc Document) error
}
