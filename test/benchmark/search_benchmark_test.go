package benchmark

import (
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/ranker"
)

// BenchmarkTopK measures ranking latency at various corpus sizes.
func BenchmarkTopK(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		corpus := buildCorpus(size)
		b.Run(fmt.Sprintf("docs_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = ranker.TopK(corpus, []string{vocabulary[i%len(vocabulary)]}, 5)
			}
		})
	}
}

// BenchmarkTopKMultiTerm measures ranking with a longer parsed query.
func BenchmarkTopKMultiTerm(b *testing.B) {
	corpus := buildCorpus(10000)
	plan := parser.Parse("Distributed search ranking engine query")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ranker.TopK(corpus, plan.Terms, 5)
	}
}

// BenchmarkFingerprint measures the cache-key fingerprint of a large corpus.
func BenchmarkFingerprint(b *testing.B) {
	corpus := buildCorpus(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = corpus.Fingerprint()
	}
}
