package memory

import (
	"context"
	"sync"

	"seabattle/internal/archive"
	"seabattle/internal/model"
)

// Archive is an in-memory implementation of the archive interface.
type Archive struct {
	mu      sync.Mutex
	results []*model.GameResult // most recent first
}

// New creates a new in-memory archive.
func New() *Archive {
	return &Archive{}
}

// Ensure Archive implements the interface
var _ archive.Archive = (*Archive)(nil)

func (a *Archive) Record(ctx context.Context, result *model.GameResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	copied := *result
	a.results = append([]*model.GameResult{&copied}, a.results...)
	return nil
}

func (a *Archive) Recent(ctx context.Context, n int) ([]*model.GameResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n > len(a.results) {
		n = len(a.results)
	}
	out := make([]*model.GameResult, 0, n)
	for _, r := range a.results[:n] {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}
