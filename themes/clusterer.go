package themes

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/poiesic/minutes/ai"
	"github.com/poiesic/minutes/core"
	"github.com/poiesic/minutes/extract"
)

const (
	// DefaultThemeCount is the number of clusters requested when not configured.
	DefaultThemeCount = 5

	// maxSampleTexts caps the member texts attached to a theme.
	maxSampleTexts = 3
)

// Clusterer groups transcript segments into topic clusters.
type Clusterer struct {
	embedder   ai.Embedder
	themeCount int
	restarts   int
	maxIter    int
	seed       uint64
	logger     *slog.Logger
}

// Option configures a Clusterer.
type Option func(*Clusterer) error

// WithThemeCount sets the requested number of themes.
// Values below 2 disable clustering entirely.
func WithThemeCount(k int) Option {
	return func(c *Clusterer) error {
		c.themeCount = k
		return nil
	}
}

// WithSeed replaces the fixed k-means seed.
func WithSeed(seed uint64) Option {
	return func(c *Clusterer) error {
		c.seed = seed
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clusterer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClusterer creates a clusterer backed by the given embedder.
func NewClusterer(embedder ai.Embedder, opts ...Option) (*Clusterer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	c := &Clusterer{
		embedder:   embedder,
		themeCount: DefaultThemeCount,
		restarts:   DefaultRestarts,
		maxIter:    DefaultMaxIterations,
		seed:       DefaultSeed,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "theme-clusterer")
	return c, nil
}

// ExtractThemes clusters the non-empty segment contents.
func (c *Clusterer) ExtractThemes(ctx context.Context, segments []*core.Segment) extract.Result[core.Theme] {
	texts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment != nil && strings.TrimSpace(segment.Content) != "" {
			texts = append(texts, segment.Content)
		}
	}
	return c.Cluster(ctx, texts)
}

// Cluster embeds texts and groups them into at most the configured number
// of themes, sorted by descending confidence. Fewer than two texts, or an
// effective cluster count below two, yields an empty result.
func (c *Clusterer) Cluster(ctx context.Context, texts []string) extract.Result[core.Theme] {
	k := min(c.themeCount, len(texts))
	if len(texts) < 2 || k < 2 {
		return extract.Succeeded[core.Theme](nil)
	}

	vectors, err := c.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		c.logger.Warn("embedding failed", "texts", len(texts), "err", err)
		return extract.FailedWith[core.Theme](fmt.Errorf("embedding %d texts: %w", len(texts), err))
	}
	points, err := widen(vectors, len(texts))
	if err != nil {
		c.logger.Warn("unusable embeddings", "err", err)
		return extract.FailedWith[core.Theme](err)
	}

	result := kmeans(points, k, c.restarts, c.maxIter, c.seed)

	members := make([][]int, k)
	for i, label := range result.labels {
		members[label] = append(members[label], i)
	}

	themes := make([]core.Theme, 0, k)
	for _, idx := range members {
		if len(idx) == 0 {
			continue
		}
		themes = append(themes, buildTheme(texts, points, idx))
	}

	slices.SortStableFunc(themes, func(a, b core.Theme) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		}
		return 0
	})

	c.logger.Debug("clustered texts", "texts", len(texts), "k", k, "themes", len(themes), "inertia", result.inertia)
	return extract.Succeeded(themes)
}

// buildTheme summarizes one cluster given its member indices in encounter order.
func buildTheme(texts []string, points [][]float64, idx []int) core.Theme {
	center := centroid(points, idx)

	var total float64
	bestSim, representative := 0.0, -1
	for _, i := range idx {
		sim := cosineSimilarity(points[i], center)
		total += sim
		// Strict comparison resolves ties to the first member
		if representative < 0 || sim > bestSim {
			bestSim, representative = sim, i
		}
	}

	rep := texts[representative]
	samples := make([]string, 0, maxSampleTexts)
	for _, i := range idx[:min(len(idx), maxSampleTexts)] {
		samples = append(samples, texts[i])
	}

	return core.Theme{
		Title:       core.TitleFrom(core.FirstSentence(rep), rep),
		Description: fmt.Sprintf("Discussion cluster with %d related segments", len(idx)),
		Confidence:  clamp01(total / float64(len(idx))),
		SampleTexts: samples,
	}
}

// widen converts embeddings to float64 and checks they share one non-zero dimension.
func widen(vectors [][]float32, want int) ([][]float64, error) {
	if len(vectors) != want {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrDimensionMismatch, len(vectors), want)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrDimensionMismatch)
	}
	points := make([][]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		points[i] = toFloat64(v)
	}
	return points, nil
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
