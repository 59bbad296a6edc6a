// Package chunker implements page-aware parent/child chunking.
//
// Documents arrive as markdown with "## Page N" markers. Each page's
// text is split into large parent chunks, and each parent into smaller
// child chunks. Children are what gets embedded and searched; parents
// are what gets returned to the LLM for context.
package chunker

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/meridian-labs/docsage/internal/core/domain"
	"github.com/meridian-labs/docsage/internal/logger"
)

// Default chunking parameters, in characters.
const (
	DefaultParentChunkSize    = 2000
	DefaultParentChunkOverlap = 200
	DefaultChildChunkSize     = 400
	DefaultChildChunkOverlap  = 50

	// DefaultMaxDocumentSize caps input text at 500MB to bound memory
	// use during splitting.
	DefaultMaxDocumentSize = 500 * 1024 * 1024
)

// pageMarkerPattern matches page boundary markers emitted by the
// parser service, e.g. "## Page 12".
var pageMarkerPattern = regexp.MustCompile(`## Page \d+`)

// Chunker splits raw markdown into parent and child chunks. Instances
// are stateless during Process and safe to share across goroutines
// indexing different documents.
type Chunker struct {
	parentSplitter *splitter
	childSplitter  *splitter
	maxSize        int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithParentSize sets the parent chunk size and overlap in characters.
func WithParentSize(size, overlap int) Option {
	return func(c *Chunker) {
		if size > 0 && overlap >= 0 {
			c.parentSplitter = newSplitter(size, overlap)
		}
	}
}

// WithChildSize sets the child chunk size and overlap in characters.
func WithChildSize(size, overlap int) Option {
	return func(c *Chunker) {
		if size > 0 && overlap >= 0 {
			c.childSplitter = newSplitter(size, overlap)
		}
	}
}

// WithMaxDocumentSize sets the input size ceiling in characters.
func WithMaxDocumentSize(max int) Option {
	return func(c *Chunker) {
		if max > 0 {
			c.maxSize = max
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		parentSplitter: newSplitter(DefaultParentChunkSize, DefaultParentChunkOverlap),
		childSplitter:  newSplitter(DefaultChildChunkSize, DefaultChildChunkOverlap),
		maxSize:        DefaultMaxDocumentSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Process splits a document into parent and child chunks keyed by page
// boundaries. It returns the ordered child chunks (page, then parent
// ordinal, then child ordinal) and the parent map.
//
// Empty input yields empty outputs. Input larger than the configured
// ceiling returns domain.ErrDocumentTooLarge; the caller treats that
// as a failure of this document only.
func (c *Chunker) Process(text, source string) ([]domain.Chunk, domain.ParentMap, error) {
	if text == "" {
		return nil, domain.ParentMap{}, nil
	}

	if len(text) > c.maxSize {
		return nil, nil, fmt.Errorf("%w: %s is %d chars (limit %d)",
			domain.ErrDocumentTooLarge, source, len(text), c.maxSize)
	}

	filename := filepath.Base(source)
	parents := domain.ParentMap{}
	var children []domain.Chunk

	currentPage := 0
	for _, seg := range splitPages(text) {
		if seg.marker != "" {
			page, err := parsePageMarker(seg.marker)
			if err != nil {
				logger.Warn("Malformed page marker in %s: %q, continuing with page %d",
					source, seg.marker, currentPage)
			} else {
				currentPage = page
			}
		}
		if strings.TrimSpace(seg.text) == "" {
			continue
		}
		c.chunkPageText(seg.text, filename, currentPage, parents, &children)
	}

	logger.Info("Chunking complete for %s: %d parents, %d children",
		source, len(parents), len(children))
	return children, parents, nil
}

// chunkPageText splits one page's text into parents and each parent
// into children, appending to the accumulators in order.
func (c *Chunker) chunkPageText(
	text, source string, page int,
	parents domain.ParentMap, children *[]domain.Chunk,
) {
	for idx, parentText := range c.parentSplitter.Split(text) {
		parentID := uuid.New().String()

		parents[parentID] = domain.Chunk{
			ID:       parentID,
			Text:     parentText,
			Source:   source,
			Page:     page,
			IsParent: true,
			Metadata: map[string]any{"index": idx},
		}

		// Children are cut strictly from the parent's own text so a
		// child never spans two parents.
		for _, childText := range c.childSplitter.Split(parentText) {
			*children = append(*children, domain.Chunk{
				ID:       uuid.New().String(),
				Text:     childText,
				Source:   source,
				Page:     page,
				ParentID: parentID,
				Metadata: map[string]any{},
			})
		}
	}
}

// pageSegment is one slice of the document: the marker that opened it
// (empty for the preamble) and the text that follows it.
type pageSegment struct {
	marker string
	text   string
}

// splitPages splits text on page markers, retaining each marker so its
// page number can be recovered. Text before the first marker becomes a
// marker-less preamble segment.
func splitPages(text string) []pageSegment {
	locs := pageMarkerPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []pageSegment{{text: text}}
	}

	var segments []pageSegment
	if pre := text[:locs[0][0]]; pre != "" {
		segments = append(segments, pageSegment{text: pre})
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, pageSegment{
			marker: text[loc[0]:loc[1]],
			text:   text[loc[1]:end],
		})
	}
	return segments
}

// parsePageMarker extracts the page number from a "## Page N" marker.
func parsePageMarker(marker string) (int, error) {
	fields := strings.Fields(marker)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty marker", domain.ErrInvalidInput)
	}
	return strconv.Atoi(fields[len(fields)-1])
}
