package domain

// LLMResponse is the result of a prompt completion. A failed call
// still yields a well-formed response with Error set; callers render
// the error rather than receiving a panic across the boundary.
type LLMResponse struct {
	// Content is the generated text. Empty when Error is set.
	Content string

	// Error is the provider error message, verbatim, or empty on
	// success.
	Error string
}

// Failed reports whether the response carries an error.
func (r LLMResponse) Failed() bool {
	return r.Error != ""
}

// GraphContext is the knowledge-graph side of a hybrid answer context.
type GraphContext struct {
	// Context is the pre-rendered "source rel target" fact block.
	Context string

	// Triples are the raw facts backing Context.
	Triples []Triple
}

// Triple is a single knowledge-graph fact.
type Triple struct {
	Source string `json:"source"`
	Rel    string `json:"rel"`
	Target string `json:"target"`
}

// Answer is the full result of a collection query.
type Answer struct {
	// Response is the generated answer, or an explicit "no data"
	// message when nothing could be retrieved.
	Response string `json:"response"`

	// Error is set when generation failed; Response is empty then.
	Error string `json:"error,omitempty"`

	// Sources are the retrieval hits the answer was grounded on.
	Sources []SourceRef `json:"sources,omitempty"`
}
