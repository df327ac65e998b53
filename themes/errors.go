package themes

import "errors"

var (
	// ErrEmbedderRequired is returned when creating a clusterer without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrDimensionMismatch indicates the embedder returned vectors of differing lengths.
	ErrDimensionMismatch = errors.New("embedding dimensions differ")
)
