package chunker

import "strings"

// defaultSeparators is the ordered separator preference: paragraph
// break, line break, sentence end, word boundary, then hard character
// cut. Natural boundaries are tried before cutting mid-word.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// splitter recursively splits text into pieces of at most chunkSize
// characters with overlap characters carried between adjacent pieces.
// It is stateless after construction and safe to share across
// goroutines.
type splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func newSplitter(chunkSize, overlap int) *splitter {
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split breaks text into chunks, preferring the earliest separator in
// the preference order that actually occurs in the text.
func (s *splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *splitter) split(text string, separators []string) []string {
	// Pick the first separator present in the text; the empty string
	// always matches and forces a character-level cut.
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	parts := splitKeepSeparator(text, separator)

	var chunks []string
	var pending []string

	for _, part := range parts {
		if len(part) < s.chunkSize {
			pending = append(pending, part)
			continue
		}

		// Oversized piece: flush what we have, then recurse into it
		// with the finer separators.
		if len(pending) > 0 {
			chunks = append(chunks, s.merge(pending)...)
			pending = nil
		}
		if len(remaining) == 0 {
			chunks = append(chunks, part)
		} else {
			chunks = append(chunks, s.split(part, remaining)...)
		}
	}

	if len(pending) > 0 {
		chunks = append(chunks, s.merge(pending)...)
	}

	return chunks
}

// merge greedily joins small pieces into chunks of at most chunkSize,
// carrying overlap characters of trailing pieces into the next chunk.
func (s *splitter) merge(parts []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(window, ""))
		if joined != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, part := range parts {
		if total+len(part) > s.chunkSize && total > 0 {
			flush()

			// Drop leading pieces until the retained tail fits within
			// the overlap budget.
			for len(window) > 0 && (total > s.overlap || total+len(part) > s.chunkSize) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, part)
		total += len(part)
	}
	flush()

	return chunks
}

// splitKeepSeparator splits text on sep, keeping the separator
// attached to the end of each piece so no characters are lost when
// pieces are re-joined. An empty separator splits into single runes.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		runes := []rune(text)
		parts := make([]string, len(runes))
		for i, r := range runes {
			parts[i] = string(r)
		}
		return parts
	}

	var parts []string
	for {
		idx := strings.Index(text, sep)
		if idx < 0 {
			if text != "" {
				parts = append(parts, text)
			}
			return parts
		}
		parts = append(parts, text[:idx+len(sep)])
		text = text[idx+len(sep):]
	}
}
