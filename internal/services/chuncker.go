package services

import (
	"strings"
	"unicode/utf8"
)

// TextChuncker splits texts that exceed the embedding input limit.
type TextChuncker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChuncker {
	return &textChunker{}
}

// ChunkText implements TextChuncker. Sizes are counted in runes. Paragraphs are
// kept whole when they fit, then sentences, then fixed windows; every chunk
// after the first starts with the last overlap runes of its predecessor.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	// Room for the overlap tail and one separator.
	limit := max(maxChunkSize-overlap-1, 1)

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= limit {
			pieces = append(pieces, para)
			continue
		}
		for _, sentence := range splitIntoSentences(para) {
			pieces = append(pieces, splitWindows(sentence, limit)...)
		}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size == 0 {
			return
		}
		chunks = append(chunks, current.String())
		tail := getLastNChars(current.String(), overlap)
		current.Reset()
		current.WriteString(tail)
		size = utf8.RuneCountInString(tail)
	}

	fresh := 0
	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if fresh > 0 && size+1+n > maxChunkSize {
			flush()
			fresh = 0
		}
		if size > 0 {
			current.WriteString(" ")
			size++
		}
		current.WriteString(piece)
		size += n
		fresh += n
	}
	if fresh > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

// splitWindows cuts s into pieces of at most size runes.
func splitWindows(s string, size int) []string {
	if size <= 0 {
		size = 1
	}
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}

	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		if w := strings.TrimSpace(string(runes[start:end])); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func getLastNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
