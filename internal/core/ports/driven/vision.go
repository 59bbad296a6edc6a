package driven

import "context"

// VisionDescriber produces a textual description of an extracted
// image. Called once per image during indexing. Failures must degrade
// to a placeholder description, never abort indexing; that degradation
// is the caller's job, so implementations simply return the error.
type VisionDescriber interface {
	// Describe analyses the image at imagePath using the named vision
	// model.
	Describe(ctx context.Context, imagePath, prompt, modelName string) (string, error)
}

// AudioTranscriber converts an extracted audio track to text.
// Failure degrades to a placeholder string appended to the document
// text.
type AudioTranscriber interface {
	// Transcribe returns the transcript of the audio file at audioPath.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
