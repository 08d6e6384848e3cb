package vector

import "context"

// Index is the similarity-index surface the retrieval engine depends on.
// Upserting an existing id replaces its entry; Query returns matches nearest
// first, with the metadata stored alongside each vector.
type Index interface {
	Upsert(ctx context.Context, id string, values []float32, metadata map[string]any) error
	Query(ctx context.Context, values []float32, topK int) ([]map[string]any, error)
}
