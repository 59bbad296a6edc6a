package driven

import "context"

// ParseResult is the parser service output for one document.
type ParseResult struct {
	// Text is the extracted markdown. Page boundaries appear as
	// "## Page N" markers and extracted images as
	// "[CHART_PLACEHOLDER:<filename>]" placeholders.
	Text string `json:"text"`

	// Images are paths to extracted image files.
	Images []string `json:"images"`

	// AudioPath is set when the document carried an audio track
	// (e.g. MP4 uploads).
	AudioPath string `json:"audio_path,omitempty"`
}

// DocumentParser extracts text and visual assets from an uploaded
// file. It is an external collaborator; the core never renders
// PDF/DOCX/PPTX itself.
type DocumentParser interface {
	// Parse extracts the document at filePath, writing image assets
	// under outputDir.
	Parse(ctx context.Context, filePath, outputDir string) (*ParseResult, error)
}
