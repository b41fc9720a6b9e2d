package videos

import (
	"context"
	"math"
	"sync"
)

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// LazyEmbedder builds its Embedder on first use and shares it afterwards.
// A construction error is returned on every call.
type LazyEmbedder struct {
	New func() (Embedder, error)

	once sync.Once
	e    Embedder
	err  error
}

// Embed implements Embedder.
func (l *LazyEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	l.once.Do(func() {
		l.e, l.err = l.New()
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.e.Embed(ctx, text)
}

// Cosine returns the cosine similarity of a and b; 0 when either is a zero
// vector or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
