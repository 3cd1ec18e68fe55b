package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resu/internal/types"
)

type snapshot struct {
	value       int
	description string
}

func TestHistory_Apply(t *testing.T) {
	next := 7

	tests := []struct {
		name          string
		next          *int
		description   string
		wantValue     int
		wantChanged   bool
		wantSnapshots []snapshot
	}{
		{
			name:      "no replacement",
			next:      nil,
			wantValue: 3,
		},
		{
			name:          "replacement with description",
			next:          &next,
			description:   "Tightened bullets",
			wantValue:     7,
			wantChanged:   true,
			wantSnapshots: []snapshot{{3, "Tightened bullets"}},
		},
		{
			name:          "default description",
			next:          &next,
			wantValue:     7,
			wantChanged:   true,
			wantSnapshots: []snapshot{{3, types.DefaultChangeDescription}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []snapshot
			h := History[int]{Snapshot: func(_ context.Context, previous int, description string) error {
				got = append(got, snapshot{previous, description})
				return nil
			}}

			value, changed, err := h.Apply(context.Background(), 3, tt.next, tt.description)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantSnapshots, got)
		})
	}
}

func TestHistory_SnapshotFailureKeepsCurrent(t *testing.T) {
	boom := errors.New("disk full")
	h := History[string]{Snapshot: func(context.Context, string, string) error { return boom }}
	next := "new"

	value, changed, err := h.Apply(context.Background(), "old", &next, "")

	assert.ErrorIs(t, err, boom)
	assert.False(t, changed)
	assert.Equal(t, "old", value)
}
