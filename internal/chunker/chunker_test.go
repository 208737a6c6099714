package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.size != DefaultSize {
			t.Errorf("expected size %d, got %d", DefaultSize, s.size)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, s.overlap)
		}
	})

	t.Run("custom size", func(t *testing.T) {
		s := New(WithSize(500))
		if s.size != 500 {
			t.Errorf("expected size 500, got %d", s.size)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		s := New(WithOverlap(100))
		if s.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", s.overlap)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		s := New(WithSize(0), WithOverlap(-1))
		if s.size != DefaultSize {
			t.Errorf("expected default size, got %d", s.size)
		}
		if s.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", s.overlap)
		}
	})
}

func TestSplitter_Split(t *testing.T) {
	t.Run("empty text produces no chunks", func(t *testing.T) {
		chunks := New().Split("")
		if len(chunks) != 0 {
			t.Errorf("expected no chunks, got %d", len(chunks))
		}
	})

	t.Run("text shorter than size is one chunk", func(t *testing.T) {
		chunks := New().Split("short text")
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0] != "short text" {
			t.Errorf("expected chunk to be the whole text, got %q", chunks[0])
		}
	})

	t.Run("2500 characters at 1000/200 produce 4 chunks", func(t *testing.T) {
		text := strings.Repeat("a", 2500)
		chunks := New().Split(text)
		if len(chunks) != 4 {
			t.Fatalf("expected 4 chunks, got %d", len(chunks))
		}
		// Windows start at 0, 800, 1600, 2400.
		for i, want := range []int{1000, 1000, 900, 100} {
			if len(chunks[i]) != want {
				t.Errorf("chunk %d: expected length %d, got %d", i, want, len(chunks[i]))
			}
		}
	})

	t.Run("first chunk starts at offset zero", func(t *testing.T) {
		text := "abcdefghij"
		chunks := New(WithSize(4), WithOverlap(1)).Split(text)
		if len(chunks) == 0 {
			t.Fatal("expected chunks")
		}
		if !strings.HasPrefix(text, chunks[0]) {
			t.Errorf("first chunk %q is not a prefix of the text", chunks[0])
		}
	})

	t.Run("non-overlapping portions reconstruct the text", func(t *testing.T) {
		text := "the quick brown fox jumps over the lazy dog, twice at least"
		size, overlap := 16, 5
		chunks := New(WithSize(size), WithOverlap(overlap)).Split(text)

		var b strings.Builder
		for i, c := range chunks {
			if i == 0 {
				b.WriteString(c)
				continue
			}
			runes := []rune(c)
			if len(runes) > overlap {
				b.WriteString(string(runes[overlap:]))
			}
		}
		if got := b.String(); got != text {
			t.Errorf("reconstructed %q, want %q", got, text)
		}
	})

	t.Run("consecutive chunks share the overlap", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 10)
		chunks := New(WithSize(30), WithOverlap(10)).Split(text)
		for i := 1; i < len(chunks); i++ {
			prev := []rune(chunks[i-1])
			tail := string(prev[len(prev)-10:])
			if !strings.HasPrefix(chunks[i], tail) {
				t.Errorf("chunk %d does not start with the previous chunk's tail", i)
			}
		}
	})

	t.Run("overlap equal to size still advances", func(t *testing.T) {
		s := &Splitter{size: 3, overlap: 3}
		chunks := s.Split("abcdef")
		if len(chunks) != 6 {
			t.Fatalf("expected 6 chunks with single-character steps, got %d", len(chunks))
		}
		if chunks[0] != "abc" || chunks[5] != "f" {
			t.Errorf("unexpected window contents: %q ... %q", chunks[0], chunks[5])
		}
	})

	t.Run("multi-byte runes are never split", func(t *testing.T) {
		text := strings.Repeat("héllo wörld ", 20)
		chunks := New(WithSize(7), WithOverlap(2)).Split(text)
		for i, c := range chunks {
			if !strings.ContainsRune(c, '�') {
				continue
			}
			t.Errorf("chunk %d contains a replacement character: %q", i, c)
		}
	})

	t.Run("chunk count follows the window formula", func(t *testing.T) {
		cases := []struct {
			length, size, overlap, want int
		}{
			{2500, 1000, 200, 4},
			{800, 1000, 200, 1},
			{1000, 1000, 200, 2},
			{100, 30, 10, 5},
		}
		for _, tc := range cases {
			text := strings.Repeat("x", tc.length)
			chunks := New(WithSize(tc.size), WithOverlap(tc.overlap)).Split(text)
			if len(chunks) != tc.want {
				t.Errorf("length %d size %d overlap %d: expected %d chunks, got %d",
					tc.length, tc.size, tc.overlap, tc.want, len(chunks))
			}
		}
	})
}
