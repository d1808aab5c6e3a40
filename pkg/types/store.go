package types

// Store is the persistence interface for playbook documents. Each CLI
// invocation is one Load, mutate, Save cycle; Save is the atomicity
// boundary. Implementations do not guard against concurrent writers
// (last-writer-wins is accepted for the single-user usage model).
type Store interface {
	// Load returns the stored document. When no document exists it
	// returns an empty default document together with ErrNotFound so
	// callers can treat absence as empty state. Unparseable content
	// returns ErrCorruptDocument.
	Load() (*Document, error)

	// Save persists the document durably, refreshing UpdatedAt first.
	// A crash mid-save never corrupts the previously stored document.
	Save(doc *Document) error

	// Initialize creates a new document populated with the given seed
	// patterns. Returns ErrAlreadyExists if a document exists and force
	// is false.
	Initialize(seed []Pattern, force bool) (*Document, error)
}
