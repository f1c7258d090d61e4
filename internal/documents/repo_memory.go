package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document
	seq  map[string]int
	next int
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document), seq: make(map[string]int)}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	r.next++
	r.seq[doc.ID] = r.next
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok || doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return r.seq[out[i].ID] > r.seq[out[j].ID]
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, documentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok || doc.UserID != userID {
		return 0, nil
	}
	delete(r.docs, documentID)
	delete(r.seq, documentID)
	return 1, nil
}

var _ Repo = (*MemoryRepo)(nil)
