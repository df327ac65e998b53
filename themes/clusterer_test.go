package themes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/minutes/ai/mock"
	"github.com/poiesic/minutes/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder maps each text to a preset vector.
func fixedEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	e := mock.NewMockEmbedder()
	e.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = vectors[text]
		}
		return out, nil
	}
	return e
}

func TestNewClusterer_RequiresEmbedder(t *testing.T) {
	_, err := NewClusterer(nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestCluster_TooFewTexts(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	c, err := NewClusterer(embedder)
	require.NoError(t, err)

	for _, texts := range [][]string{nil, {"only one"}} {
		res := c.Cluster(context.Background(), texts)
		assert.Equal(t, core.StageEmpty, res.Outcome)
		assert.Empty(t, res.Items)
	}

	c, err = NewClusterer(embedder, WithThemeCount(1))
	require.NoError(t, err)
	res := c.Cluster(context.Background(), []string{"a", "b", "c"})
	assert.Empty(t, res.Items)

	assert.Zero(t, embedder.CallCount(), "no embedding below two clusters")
}

func TestCluster_SeparatesTopics(t *testing.T) {
	vectors := map[string][]float32{
		"Budget is tight. Cut costs.": {1, 0, 0},
		"We must reduce spend":        {0.9, 0.1, 0},
		"Hiring plan for Q3":          {0, 1, 0.1},
		"Two engineers join in May":   {0, 0.95, 0},
	}
	c, err := NewClusterer(fixedEmbedder(vectors), WithThemeCount(2))
	require.NoError(t, err)

	texts := []string{"Budget is tight. Cut costs.", "Hiring plan for Q3", "We must reduce spend", "Two engineers join in May"}
	res := c.Cluster(context.Background(), texts)
	require.Equal(t, core.StageOK, res.Outcome)
	require.Len(t, res.Items, 2)

	for i, theme := range res.Items {
		assert.GreaterOrEqual(t, theme.Confidence, 0.0)
		assert.LessOrEqual(t, theme.Confidence, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Items[i-1].Confidence, theme.Confidence)
		}
		assert.Equal(t, "Discussion cluster with 2 related segments", theme.Description)
		assert.Len(t, theme.SampleTexts, 2)
	}

	byTitle := map[string]core.Theme{}
	for _, theme := range res.Items {
		byTitle[theme.Title] = theme
	}
	budget, ok := byTitle["Budget is tight"]
	require.True(t, ok, "got titles %v", byTitle)
	assert.Equal(t, []string{"Budget is tight. Cut costs.", "We must reduce spend"}, budget.SampleTexts)
}

func TestCluster_Deterministic(t *testing.T) {
	c, err := NewClusterer(mock.NewMockEmbedder(), WithThemeCount(3))
	require.NoError(t, err)

	texts := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta"}
	first := c.Cluster(context.Background(), texts)
	second := c.Cluster(context.Background(), texts)
	require.Equal(t, core.StageOK, first.Outcome)
	assert.Equal(t, first.Items, second.Items)

	members := 0
	for _, theme := range first.Items {
		members += len(theme.SampleTexts)
	}
	assert.LessOrEqual(t, len(first.Items), 3)
	assert.GreaterOrEqual(t, members, len(first.Items))
}

func TestCluster_LongTitle(t *testing.T) {
	long := strings.Repeat("word ", 30)
	c, err := NewClusterer(mock.NewMockEmbedder(), WithThemeCount(2))
	require.NoError(t, err)

	res := c.Cluster(context.Background(), []string{long, "short"})
	require.Len(t, res.Items, 2)
	for _, theme := range res.Items {
		if strings.HasPrefix(theme.Title, "word") {
			assert.Equal(t, core.Truncate(long, 100)+"...", theme.Title)
		} else {
			assert.Equal(t, "short", theme.Title)
		}
		// Singleton clusters sit on their centroid
		assert.InDelta(t, 1.0, theme.Confidence, 1e-9)
	}
}

func TestCluster_Failures(t *testing.T) {
	t.Run("embedder error", func(t *testing.T) {
		e := mock.NewMockEmbedder()
		e.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("model not loaded")
		}
		c, err := NewClusterer(e)
		require.NoError(t, err)

		res := c.Cluster(context.Background(), []string{"a", "b"})
		assert.True(t, res.Failed())
		assert.Contains(t, res.Err.Error(), "model not loaded")
		assert.Empty(t, res.Items)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		c, err := NewClusterer(fixedEmbedder(map[string][]float32{"a": {1, 0}, "b": {1, 0, 0}}))
		require.NoError(t, err)

		res := c.Cluster(context.Background(), []string{"a", "b"})
		assert.True(t, res.Failed())
		assert.ErrorIs(t, res.Err, ErrDimensionMismatch)
	})
}

func TestExtractThemes_SkipsBlankSegments(t *testing.T) {
	c, err := NewClusterer(mock.NewMockEmbedder())
	require.NoError(t, err)

	segs := []*core.Segment{{Content: "hello"}, {Content: "  "}, nil}
	res := c.ExtractThemes(context.Background(), segs)
	assert.Equal(t, core.StageEmpty, res.Outcome)
}
