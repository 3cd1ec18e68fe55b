package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resu/internal/types"
)

// MemoryStore is a ResumeStore kept in process memory. It backs tests and
// runs without a database; contents are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*types.ResumeRecord
	seq     map[string]int
	next    int
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: map[string]*types.ResumeRecord{},
		seq:     map[string]int{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateResume stores a copy of rec
func (m *MemoryStore) CreateResume(_ context.Context, rec *types.ResumeRecord) (*types.ResumeRecord, error) {
	stored, err := clone(rec)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	stored.ID = uuid.NewString()
	stored.Status = types.StatusDraft
	stored.TemplateID = templateOrDefault(stored.TemplateID)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Versions = []types.ResumeVersion{}
	m.records[stored.ID] = stored
	m.seq[stored.ID] = m.next
	m.next++

	return clone(stored)
}

// UpdateResume applies update under the store lock
func (m *MemoryStore) UpdateResume(ctx context.Context, id string, update *types.ResumeUpdate) (*types.ResumeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := m.now()
	var pending *types.ResumeVersion
	history := History[types.ResumeData]{
		Snapshot: func(_ context.Context, previous types.ResumeData, description string) error {
			pending = &types.ResumeVersion{
				ID:                uuid.NewString(),
				ResumeData:        previous,
				ChangeDescription: description,
				CreatedAt:         now,
			}
			return nil
		},
	}

	data, _, err := history.Apply(ctx, rec.ResumeData, update.ResumeData, update.ChangeDescription)
	if err != nil {
		return nil, err
	}

	// Nothing is written until every part of the update succeeded
	if pending != nil {
		rec.Versions = append([]types.ResumeVersion{*pending}, rec.Versions...)
	}
	rec.ResumeData = data
	if update.CoverLetter != nil {
		letter := *update.CoverLetter
		rec.CoverLetter = &letter
	}
	if update.TemplateID != nil {
		rec.TemplateID = *update.TemplateID
	}
	if update.Status != nil {
		rec.Status = *update.Status
	}
	rec.UpdatedAt = now

	return clone(rec)
}

// GetResume returns a copy of the record
func (m *MemoryStore) GetResume(_ context.Context, id string) (*types.ResumeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec)
}

// ListResumes returns summaries newest first
func (m *MemoryStore) ListResumes(_ context.Context) ([]types.ResumeSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*types.ResumeRecord, 0, len(m.records))
	for _, rec := range m.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return m.seq[recs[i].ID] > m.seq[recs[j].ID]
	})

	summaries := make([]types.ResumeSummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, rec.Summary())
	}
	return summaries, nil
}

// DeleteResume removes the record and its versions
func (m *MemoryStore) DeleteResume(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	delete(m.seq, id)
	return nil
}

// Close is a no-op
func (m *MemoryStore) Close() {}

// clone deep-copies a record so callers never share state with the store
func clone(rec *types.ResumeRecord) (*types.ResumeRecord, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to copy resume: %w", err)
	}
	var out types.ResumeRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy resume: %w", err)
	}
	return &out, nil
}
