package entry

import "context"

// DocumentStore persists the two entry collections as whole documents.
type DocumentStore interface {
	// Load reads both collections. On any read or parse failure both come
	// back empty; the store logs the cause (fail-safe-to-empty policy).
	Load(ctx context.Context) (entries, drafts []Entry)
	// SaveEntries rewrites the completed-entries document and regenerates
	// the HTML archive from the union of both collections.
	SaveEntries(ctx context.Context, entries, drafts []Entry) error
	// SaveDrafts rewrites the drafts document. The archive is not rebuilt.
	SaveDrafts(ctx context.Context, drafts []Entry) error
}
