package watcher

import (
	"context"
	"sync/atomic"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
)

// Ensure SwapIndex implements the interface.
var _ driven.VectorIndex = (*SwapIndex)(nil)

// SwapIndex is a VectorIndex handle whose underlying snapshot can be
// replaced atomically while searches proceed. Readers always see either
// the old snapshot or the new one, never a partial state.
type SwapIndex struct {
	current atomic.Value // driven.VectorIndex
}

// NewSwapIndex creates a handle serving the given initial snapshot.
func NewSwapIndex(initial driven.VectorIndex) *SwapIndex {
	s := &SwapIndex{}
	s.current.Store(&initial)
	return s
}

// Swap replaces the served snapshot.
func (s *SwapIndex) Swap(next driven.VectorIndex) {
	s.current.Store(&next)
}

func (s *SwapIndex) load() driven.VectorIndex {
	return *s.current.Load().(*driven.VectorIndex)
}

// Search delegates to the current snapshot.
func (s *SwapIndex) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	return s.load().Search(ctx, query, k)
}

// Len delegates to the current snapshot.
func (s *SwapIndex) Len() int {
	return s.load().Len()
}

// ModelName delegates to the current snapshot.
func (s *SwapIndex) ModelName() string {
	return s.load().ModelName()
}

// Dimensions delegates to the current snapshot.
func (s *SwapIndex) Dimensions() int {
	return s.load().Dimensions()
}

// Save delegates to the current snapshot.
func (s *SwapIndex) Save(dir string) error {
	return s.load().Save(dir)
}
