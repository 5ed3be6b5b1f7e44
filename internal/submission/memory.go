package submission

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps submissions in process memory. Nothing survives a
// restart.
type MemoryStore struct {
	mu      sync.Mutex
	records []*Submission
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: []*Submission{}, now: time.Now}
}

// Create implements Store.
func (m *MemoryStore) Create(ctx context.Context, p Payload) (*Submission, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	sub := build(p, nextID(now, maxID(m.records)), now)
	m.records = append(m.records, sub)

	cp := *sub
	return &cp, nil
}

// ListAll implements Store.
func (m *MemoryStore) ListAll(ctx context.Context) ([]*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Submission, 0, len(m.records))
	for _, s := range m.records {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// GetByID implements Store.
func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.records {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
