package db

import (
	"context"
	"errors"

	"github.com/jonathan/resu/internal/types"
)

// ErrNotFound is returned when a résumé id does not exist
var ErrNotFound = errors.New("resume not found")

// ResumeStore persists generated résumés and their version history
type ResumeStore interface {
	// CreateResume stores a new record. The store assigns ID, status and
	// timestamps; the record starts without versions.
	CreateResume(ctx context.Context, rec *types.ResumeRecord) (*types.ResumeRecord, error)
	// UpdateResume applies a partial update. Replacing the résumé content
	// first snapshots the current content as a new version.
	UpdateResume(ctx context.Context, id string, update *types.ResumeUpdate) (*types.ResumeRecord, error)
	// GetResume returns the record with versions newest first
	GetResume(ctx context.Context, id string) (*types.ResumeRecord, error)
	// ListResumes returns summaries newest first
	ListResumes(ctx context.Context) ([]types.ResumeSummary, error)
	// DeleteResume removes the record and its versions
	DeleteResume(ctx context.Context, id string) error
	Close()
}

// History applies a change to a versioned value. When a replacement is given,
// the current value is handed to Snapshot before the replacement is returned
// for storage. Callers run Apply inside the atomicity boundary of their store
// so the snapshot and the new value become visible together.
type History[T any] struct {
	Snapshot func(ctx context.Context, previous T, description string) error
}

// Apply returns the value to store and whether it changed
func (h History[T]) Apply(ctx context.Context, current T, next *T, description string) (T, bool, error) {
	if next == nil {
		return current, false, nil
	}
	if description == "" {
		description = types.DefaultChangeDescription
	}
	if err := h.Snapshot(ctx, current, description); err != nil {
		return current, false, err
	}
	return *next, true, nil
}
