package providers

import "context"

// Embedder turns free text into a fixed-length vector using a remote model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer sends a system instruction plus a user prompt to a remote chat
// model and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
