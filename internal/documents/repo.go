package documents

import "context"

// Repo defines persistence operations for documents. Update persists every
// lifecycle transition as one whole-row write guarded by the version stamp.
type Repo interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	GetForUser(ctx context.Context, userID, id string) (*Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, userID, id string) error
}
