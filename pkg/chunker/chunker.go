package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// Chunker splits document text into overlapping, size-bounded passages.
// Output is a pure function of (text, size, overlap).
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func New(chunkSize, chunkOverlap int) Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}

	return Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split chunks text on paragraph boundaries first, greedily packing
// paragraphs up to the chunk size. A single paragraph longer than the chunk
// size is sub-split at word boundaries, never inside a word. Each chunk after
// the first is then prefixed with the trailing overlap characters of its
// predecessor so adjacent chunks share context.
func (c Chunker) Split(text string) []string {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	current := ""

	for _, para := range paragraphs {
		if len(current)+len(para) <= c.chunkSize {
			current = strings.TrimSpace(current + "\n\n" + para)
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if len(para) > c.chunkSize {
			current = c.splitLongParagraph(para, &chunks)
		} else {
			current = para
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return c.injectOverlap(chunks)
}

// splitLongParagraph packs words into sub-chunks of at most chunkSize and
// returns the unflushed remainder.
func (c Chunker) splitLongParagraph(para string, chunks *[]string) string {
	sub := ""
	for _, word := range strings.Fields(para) {
		if len(sub)+len(word)+1 <= c.chunkSize {
			sub = strings.TrimSpace(sub + " " + word)
			continue
		}
		if sub != "" {
			*chunks = append(*chunks, sub)
		}
		sub = word
	}
	return sub
}

// injectOverlap prefixes each chunk (except the first) with the tail of the
// previous chunk's text.
func (c Chunker) injectOverlap(chunks []string) []string {
	if len(chunks) == 0 || c.chunkOverlap == 0 {
		return chunks
	}

	overlapped := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i == 0 {
			overlapped = append(overlapped, chunk)
			continue
		}
		prev := chunks[i-1]
		tail := prev
		if len(prev) > c.chunkOverlap {
			start := len(prev) - c.chunkOverlap
			// Never cut inside a multi-byte rune.
			for start > 0 && !utf8.RuneStart(prev[start]) {
				start--
			}
			tail = prev[start:]
		}
		overlapped = append(overlapped, tail+"\n"+chunk)
	}
	return overlapped
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphSplit.Split(text, -1) {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
