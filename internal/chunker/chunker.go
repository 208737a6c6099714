// Package chunker provides fixed-size sliding-window text splitting.
//
// Splitting is pure character-offset slicing with no sentence or word
// boundary awareness: chunks may cut mid-word. That behaviour is part
// of the ingestion contract and must not be "improved".
package chunker

// DefaultSize is the default number of characters per chunk.
const DefaultSize = 1000

// DefaultOverlap is the default number of characters shared between
// consecutive chunks.
const DefaultOverlap = 200

// Splitter splits extracted text into overlapping fixed-size windows.
type Splitter struct {
	size    int
	overlap int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithSize sets the chunk size in characters.
func WithSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Split emits the sliding windows of text: each chunk is
// text[start : start+size] in characters, and start advances by
// size-overlap. The last chunk is naturally shorter when the text
// runs out; no padding. Empty input yields no chunks.
//
// Offsets are runes, not bytes, so multi-byte characters are never
// split. The advance is clamped to at least one character, which
// keeps the window moving even if overlap >= size slips through
// configuration validation.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)

	step := s.size - s.overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]string, 0, total/step+1)
	for start := 0; start < total; start += step {
		end := start + s.size
		if end > total {
			end = total
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
