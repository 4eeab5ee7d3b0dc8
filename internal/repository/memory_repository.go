package repository

import (
	"context"
	"sync"
	"time"

	"github.com/limaJavier/classgrid/internal/models"
	appErrors "github.com/limaJavier/classgrid/pkg/errors"
)

type memoryEntry struct {
	record  *models.TimetableRecord
	savedAt time.Time
}

// MemoryRepository keeps timetables in process; entries older than the TTL are dropped on read.
type MemoryRepository struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	items map[string]memoryEntry
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]memoryEntry),
	}
}

func (r *MemoryRepository) Save(ctx context.Context, record *models.TimetableRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[record.ID] = memoryEntry{record: record.Clone(), savedAt: r.now()}
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.TimetableRecord, error) {
	r.mu.RLock()
	entry, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	if r.ttl > 0 && r.now().Sub(entry.savedAt) > r.ttl {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return nil, notFound(id)
	}
	return entry.record.Clone(), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(id)
	}
	delete(r.items, id)
	return nil
}

func notFound(id string) error {
	return appErrors.Clone(appErrors.ErrNotFound, "timetable "+id+" not found")
}
