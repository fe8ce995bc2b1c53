package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// MemoryLog keeps the most recent entries in process. It backs the audit
// endpoint when the service runs without a database.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []models.AuditLog
	max     int
	nextID  uint
}

var (
	_ Sink   = (*MemoryLog)(nil)
	_ Reader = (*MemoryLog)(nil)
)

func NewMemoryLog(max int) *MemoryLog {
	if max <= 0 {
		max = 1000
	}
	return &MemoryLog{max: max}
}

func (m *MemoryLog) Write(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	rec := toRecord(ev)
	rec.ID = m.nextID

	m.entries = append(m.entries, rec)
	if len(m.entries) > m.max {
		m.entries = m.entries[len(m.entries)-m.max:]
	}
	return nil
}

func (m *MemoryLog) List(_ context.Context, q Query) ([]models.AuditLog, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.ShopSlug != q.ShopSlug {
			continue
		}
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		if q.Entity != "" && e.Entity != q.Entity {
			continue
		}
		if q.From != nil && e.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !e.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	start := q.offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
