package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oneclickai/opsdeck/internal/domain/activity"
)

// defaultCapacity bounds the journal when no capacity is given.
const defaultCapacity = 1000

// ActivityRepository is an in-process activity journal. It keeps the most
// recent entries up to its capacity.
type ActivityRepository struct {
	mu       sync.Mutex
	entries  []activity.ActivityEntry
	nextID   int64
	capacity int
}

// NewActivityRepository creates an empty journal. capacity <= 0 uses the default.
func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &ActivityRepository{capacity: capacity}
}

// Log appends an entry, evicting the oldest once capacity is reached.
func (r *ActivityRepository) Log(_ context.Context, entry *activity.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append([]activity.ActivityEntry(nil), r.entries[over:]...)
	}
	return nil
}

// List returns matching entries newest first.
func (r *ActivityRepository) List(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []activity.ActivityEntry
	for _, e := range r.entries {
		if opts.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}
