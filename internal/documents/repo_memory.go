package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]*Document)}
}

// Create stores a copy of the document.
func (r *MemoryRepo) Create(ctx context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

// GetByID returns a copy of the document with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

// GetForUser returns a copy of the document if owned by userID.
func (r *MemoryRepo) GetForUser(ctx context.Context, userID, id string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

// ListByUser returns the user's documents newest-first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var docs []*Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			cp := *doc
			docs = append(docs, &cp)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	if offset >= len(docs) {
		return nil, nil
	}
	docs = docs[offset:]
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Update applies a whole-row write guarded by the version stamp.
func (r *MemoryRepo) Update(ctx context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.docs[doc.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Version != doc.Version {
		return ErrVersionConflict
	}
	doc.Version++
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

// Delete removes the document if owned by userID.
func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
