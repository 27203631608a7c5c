package classifyintent

import (
	"context"
	"fmt"

	"autostream-assistant/internal/common/embedding"
	"autostream-assistant/internal/models"
	"autostream-assistant/pkg/registry"
)

// Index holds one embedding per canonical registry phrase. It is built once
// at startup and is read-only afterwards, so it may be shared across
// conversations without locking.
type Index struct {
	embedder  embedding.Embedder
	threshold float64
	entries   []indexEntry
}

type indexEntry struct {
	intent models.Intent
	phrase string
	vector []float32
}

// NewIndex embeds every registry example up front. Registry order is
// preserved so nearest-intent ties resolve the same way on every run.
func NewIndex(ctx context.Context, reg *registry.IntentRegistry, embedder embedding.Embedder, threshold float64) (*Index, error) {
	idx := &Index{
		embedder:  embedder,
		threshold: threshold,
	}

	for _, entry := range reg.Intents {
		intent := models.Intent(entry.Name)
		for _, phrase := range entry.Examples {
			vec, err := embedder.Embed(ctx, Normalize(phrase))
			if err != nil {
				return nil, fmt.Errorf("embed registry phrase %q: %w", phrase, err)
			}
			idx.entries = append(idx.entries, indexEntry{
				intent: intent,
				phrase: phrase,
				vector: vec,
			})
		}
	}

	return idx, nil
}

// NearestIntent embeds the message and returns the intent of the most
// similar registry phrase, provided the similarity clears the threshold.
// Below threshold it returns (IntentNone, 0.0). Ties keep the earliest
// maximum since later entries only replace strictly greater scores.
func (idx *Index) NearestIntent(ctx context.Context, message string) (models.Intent, float64, error) {
	queryVec, err := idx.embedder.Embed(ctx, message)
	if err != nil {
		return models.IntentNone, 0.0, fmt.Errorf("embed query: %w", err)
	}

	bestIntent := models.IntentNone
	bestScore := 0.0

	for _, entry := range idx.entries {
		score := embedding.CosineSimilarity(queryVec, entry.vector)
		if score > bestScore {
			bestScore = score
			bestIntent = entry.intent
		}
	}

	if bestScore >= idx.threshold {
		return bestIntent, bestScore, nil
	}

	return models.IntentNone, 0.0, nil
}

// Size reports the number of indexed phrases.
func (idx *Index) Size() int {
	return len(idx.entries)
}
