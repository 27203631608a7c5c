// internal/common/embedding/embedder.go
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Embedder turns a piece of text into a fixed-dimension vector. The similarity
// index depends only on this interface; implementations are the local hashed
// embedder below and the remote HTTP client.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// LocalEmbedder is a deterministic feature-hashing embedder: words and
// character trigrams are hashed into a fixed number of buckets and the
// resulting vector is L2-normalized. It needs no model files and no network,
// which keeps embedding an instantaneous local call, and phrasings that share
// words or subwords land close together under cosine similarity.
type LocalEmbedder struct {
	dim int
}

// NewLocalEmbedder creates an embedder producing vectors of the given
// dimension. Dimension must be positive; 256 is the production default.
func NewLocalEmbedder(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &LocalEmbedder{dim: dim}
}

func (e *LocalEmbedder) Dimension() int {
	return e.dim
}

func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		// Whole words carry more weight than their trigrams
		vec[e.bucket("w:"+word)] += 1.0

		runes := []rune(word)
		for i := 0; i+3 <= len(runes); i++ {
			vec[e.bucket("t:"+string(runes[i:i+3]))] += 0.5
		}
	}

	normalize(vec)
	return vec, nil
}

func (e *LocalEmbedder) bucket(feature string) int {
	h := fnv.New32a()
	h.Write([]byte(feature))
	return int(h.Sum32() % uint32(e.dim))
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineSimilarity computes dot(a,b) / (||a||*||b||). Returns 0 for
// mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
