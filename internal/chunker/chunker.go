// Package chunker provides sentence-aware text chunking with word overlap.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultChunkSize is the default character budget per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default overlap budget in characters.
// The seeded overlap is measured in words: one word per five overlap characters.
const DefaultOverlap = 50

// overlapWordDivisor converts the character overlap budget into a word count.
const overlapWordDivisor = 5

// sentencePattern matches a sentence including its terminator.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Splitter splits text into overlapping sentence-aligned chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap budget in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Split segments text into ordered chunks.
//
// Sentences are accumulated greedily. When appending a sentence would push
// a non-empty buffer past the chunk size, the buffer is closed and the next
// one is seeded with the trailing words of the closed chunk. A single
// sentence longer than the chunk size is never split; it becomes an
// oversized chunk on its own. Whitespace-only input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := sentencePattern.FindAllString(text, -1)
	if sentences == nil {
		// No sentence boundary: the whole text is one sentence.
		sentences = []string{text}
	}

	var chunks []string
	current := ""

	for _, sentence := range sentences {
		if current != "" && len(current)+len(sentence) > s.chunkSize {
			chunk := strings.TrimSpace(current)
			chunks = append(chunks, chunk)
			current = overlapTail(chunk, s.overlap/overlapWordDivisor)
		}
		current += sentence
	}

	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}

	return chunks
}

// overlapTail returns the last n words of chunk joined by single spaces,
// with a trailing space so the next sentence does not run into the seed.
// Returns "" when n is zero.
func overlapTail(chunk string, n int) string {
	if n <= 0 {
		return ""
	}

	words := strings.Fields(chunk)
	if len(words) > n {
		words = words[len(words)-n:]
	}

	return strings.Join(words, " ") + " "
}
