package chunker_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisor-labs/readiness/pkg/chunker"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := chunker.New(1000, 100)
	chunks := c.Split("  This is a very short document.  ")

	require.Len(t, chunks, 1)
	assert.Equal(t, "This is a very short document.", chunks[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	c := chunker.New(1000, 100)

	assert.Empty(t, c.Split(""))
	assert.Empty(t, c.Split("   \n\n  \n\n "))
}

func TestSplit_LongTextProducesMultipleChunks(t *testing.T) {
	c := chunker.New(500, 50)
	long := strings.Repeat(strings.Repeat("This is a sentence with many words. ", 50)+"\n\n", 10)

	chunks := c.Split(long)
	require.Greater(t, len(chunks), 1)

	// Core content never exceeds the chunk size by more than one word plus
	// the injected overlap prefix.
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 500+50+len("sentence.")+1)
	}
}

func TestSplit_NeverBreaksInsideWord(t *testing.T) {
	c := chunker.New(40, 0)
	text := strings.Repeat("abcdefghij ", 20)

	for _, chunk := range c.Split(text) {
		for _, word := range strings.Fields(chunk) {
			assert.Equal(t, "abcdefghij", word)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := chunker.New(200, 30)
	text := strings.Repeat("Alpha beta gamma delta epsilon zeta. ", 40)

	first := c.Split(text)
	second := c.Split(text)
	assert.Equal(t, first, second)
}

func TestSplit_PreservesAllParagraphs(t *testing.T) {
	c := chunker.New(200, 20)
	text := "Alpha paragraph content here.\n\nBeta paragraph content here.\n\nGamma paragraph content here."

	chunks := c.Split(text)
	full := strings.Join(chunks, " ")
	assert.Contains(t, full, "Alpha paragraph")
	assert.Contains(t, full, "Beta paragraph")
	assert.Contains(t, full, "Gamma paragraph")
}

func TestSplit_OverlapPrefixesPreviousTail(t *testing.T) {
	c := chunker.New(30, 10)
	text := "First paragraph goes here.\n\nSecond paragraph goes here.\n\nThird paragraph goes here."

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// Every chunk after the first starts with the tail of its predecessor's
	// core content.
	assert.Equal(t, "First paragraph goes here.", chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], "goes here.\n"))
}

func TestSplit_GreedyPacking(t *testing.T) {
	c := chunker.New(1000, 0)
	text := "One.\n\nTwo.\n\nThree."

	chunks := c.Split(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, "One.\n\nTwo.\n\nThree.", chunks[0])
}

func TestSplit_OverlapRespectsRuneBoundaries(t *testing.T) {
	c := chunker.New(30, 5)
	text := "aaééé\n\nsecond paragraph here with words"

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	// The 5-byte tail of "aaééé" would start inside a rune; the overlap
	// backs off to the previous boundary instead.
	assert.True(t, strings.HasPrefix(chunks[1], "ééé\n"))
	for i, chunk := range chunks {
		assert.Truef(t, utf8.ValidString(chunk), "chunk %d", i)
	}
}
