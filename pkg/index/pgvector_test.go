package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/advisor-labs/readiness/pkg/index"
)

func TestChunkID_Deterministic(t *testing.T) {
	a := index.ChunkID("session-1", "strategy.pdf", 3)
	b := index.ChunkID("session-1", "strategy.pdf", 3)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32) // md5 hex
}

func TestChunkID_DistinguishesInputs(t *testing.T) {
	base := index.ChunkID("session-1", "strategy.pdf", 0)

	assert.NotEqual(t, base, index.ChunkID("session-2", "strategy.pdf", 0))
	assert.NotEqual(t, base, index.ChunkID("session-1", "other.pdf", 0))
	assert.NotEqual(t, base, index.ChunkID("session-1", "strategy.pdf", 1))
}

func TestCapLimit(t *testing.T) {
	tests := []struct {
		k, stored, want int
	}{
		{5, 10, 5},
		{10, 5, 5},
		{8, 0, 0},
		{0, 10, 0},
		{-1, 10, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, index.CapLimit(tt.k, tt.stored))
	}
}
