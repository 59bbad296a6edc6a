package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/docsage/internal/core/domain"
)

func TestChunker_Process_Empty(t *testing.T) {
	c := New()

	children, parents, err := c.Process("", "doc.pdf")

	require.NoError(t, err)
	assert.Empty(t, children)
	assert.Empty(t, parents)
}

func TestChunker_Process_NoPageMarkers(t *testing.T) {
	c := New()
	text := "A short document with no page structure at all."

	children, parents, err := c.Process(text, "/uploads/doc.pdf")

	require.NoError(t, err)
	require.Len(t, parents, 1)
	require.Len(t, children, 1)

	child := children[0]
	assert.Equal(t, 0, child.Page, "text before any marker belongs to page 0")
	assert.Equal(t, "doc.pdf", child.Source, "source is the base filename")
	assert.False(t, child.IsParent)

	parent, ok := parents[child.ParentID]
	require.True(t, ok, "child must reference an existing parent")
	assert.True(t, parent.IsParent)
	assert.Contains(t, parent.Text, "no page structure")
}

func TestChunker_Process_PageAttribution(t *testing.T) {
	c := New()
	text := "## Page 1\nFirst page content here.\n\n## Page 2\nSecond page content here."

	children, parents, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	require.Len(t, children, 2)

	assert.Equal(t, 1, children[0].Page)
	assert.Contains(t, children[0].Text, "First page")
	assert.Equal(t, 2, children[1].Page)
	assert.Contains(t, children[1].Text, "Second page")

	for _, child := range children {
		assert.NotContains(t, child.Text, "## Page", "markers are boundaries, not content")
	}
	for _, parent := range parents {
		assert.NotContains(t, parent.Text, "## Page")
	}
}

func TestChunker_Process_NonSequentialPages(t *testing.T) {
	c := New()
	text := "## Page 7\nSeventh.\n## Page 3\nThird."

	children, _, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, 7, children[0].Page, "page numbers come from markers, not position")
	assert.Equal(t, 3, children[1].Page)
}

func TestChunker_Process_PreambleBeforeFirstMarker(t *testing.T) {
	c := New()
	text := "Cover sheet text.\n## Page 1\nBody."

	children, _, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, 0, children[0].Page)
	assert.Equal(t, 1, children[1].Page)
}

func TestChunker_Process_ChildWithinParent(t *testing.T) {
	// Force multiple parents and multiple children per parent.
	c := New(WithParentSize(200, 20), WithChildSize(50, 10))

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("The quarterly revenue grew steadily across all regions. ")
	}
	children, parents, err := c.Process(sb.String(), "doc.pdf")

	require.NoError(t, err)
	assert.Greater(t, len(parents), 1)
	assert.Greater(t, len(children), len(parents))

	for _, child := range children {
		parent, ok := parents[child.ParentID]
		require.True(t, ok)
		assert.Contains(t, parent.Text, strings.TrimSpace(child.Text),
			"a child never spans two parents")
	}
}

func TestChunker_Process_ChildOrdering(t *testing.T) {
	c := New(WithParentSize(100, 10), WithChildSize(40, 5))
	text := "## Page 1\n" + strings.Repeat("alpha beta gamma delta. ", 20) +
		"\n## Page 2\n" + strings.Repeat("epsilon zeta eta theta. ", 20)

	children, _, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	lastPage := 0
	for _, child := range children {
		assert.GreaterOrEqual(t, child.Page, lastPage, "children stay in page order")
		lastPage = child.Page
	}
}

func TestChunker_Process_TooLarge(t *testing.T) {
	c := New(WithMaxDocumentSize(100))

	_, _, err := c.Process(strings.Repeat("x", 101), "huge.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentTooLarge)
}

func TestChunker_Process_MalformedMarker(t *testing.T) {
	// A page number too large for int: the marker matches the pattern
	// but cannot be parsed, so the current page carries over.
	c := New()
	text := "## Page 2\nGood page.\n## Page 99999999999999999999\nOverflow page."

	children, _, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, 2, children[0].Page)
	assert.Equal(t, 2, children[1].Page, "unparseable marker keeps the previous page")
}

func TestChunker_Process_WhitespaceOnlyPage(t *testing.T) {
	c := New()
	text := "## Page 1\n   \n\t\n## Page 2\nReal content."

	children, _, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, 2, children[0].Page)
}

func TestChunker_Process_MetadataIndex(t *testing.T) {
	c := New(WithParentSize(100, 10), WithChildSize(100, 10))
	text := strings.Repeat("one two three four five six seven eight nine ten. ", 10)

	_, parents, err := c.Process(text, "doc.pdf")

	require.NoError(t, err)
	indexes := make(map[int]bool)
	for _, parent := range parents {
		idx, ok := parent.Metadata["index"].(int)
		require.True(t, ok, "parents carry their ordinal within the page")
		indexes[idx] = true
	}
	assert.True(t, indexes[0], "first parent has index 0")
}
