package extract

import "errors"

// ErrStagePanicked wraps a panic recovered inside an extractor.
var ErrStagePanicked = errors.New("extraction stage panicked")
