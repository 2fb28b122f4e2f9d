package ranker

import (
	"math"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/searcher/merger"
)

const (
	k1 = 1.2
	b  = 0.75

	// scoreScale turns a float score into the fixed-point integer used for
	// ordering and display.
	scoreScale = 1000
)

// ScoredDoc is re-exported so callers need not import merger.
type ScoredDoc = merger.ScoredDoc

// IDF weights term by how rare it is among the corpus documents. The corpus
// size is EntryCount. When docFreq exceeds EntryCount the weight goes
// negative but stays finite.
func IDF(corpus *index.Corpus, term string) float64 {
	return computeIDF(int64(corpus.EntryCount), int64(corpus.DocFreq(term)))
}

// Score returns the fixed-point relevance of doc for query:
// round(ScoreFloat * 1000).
func Score(doc index.DocumentStats, query []string, corpus *index.Corpus) int64 {
	return int64(math.Round(ScoreFloat(doc, query, corpus) * scoreScale))
}

// ScoreFloat sums, for every query term (repeats included), the idf weight
// times a saturated term frequency. Length normalisation uses the corpus
// average length only, never the document's own length.
//
// A corpus with EntryCount zero scores 0 for every document.
func ScoreFloat(doc index.DocumentStats, query []string, corpus *index.Corpus) float64 {
	avgLen, ok := corpus.AvgDocLength()
	if !ok {
		return 0
	}
	idfCache := make(map[string]float64, len(query))
	var score float64
	for _, term := range query {
		idf, seen := idfCache[term]
		if !seen {
			idf = IDF(corpus, term)
			idfCache[term] = idf
		}
		score += idf * computeTFNorm(float64(doc.Frequency(term)), avgLen)
	}
	return score
}

// Rank scores every document in the corpus and returns a max-priority queue
// of the results.
func Rank(corpus *index.Corpus, query []string) *merger.Queue {
	q := merger.NewQueue(corpus.Len())
	for id, doc := range corpus.Documents {
		q.Push(ScoredDoc{
			DocID: id,
			Score: Score(doc, query, corpus),
		})
	}
	return q
}

// TopK returns up to k of the best scoring documents, best first.
func TopK(corpus *index.Corpus, query []string, k int) []ScoredDoc {
	q := Rank(corpus, query)
	result := make([]ScoredDoc, 0, k)
	for i := 0; i < k; i++ {
		doc, ok := q.Pop()
		if !ok {
			break
		}
		result = append(result, doc)
	}
	return result
}

func computeIDF(totalDocs int64, docFreq int64) float64 {
	numerator := float64(totalDocs-docFreq) + 0.5
	denominator := float64(docFreq) + 0.5
	return math.Log10(1 + numerator/denominator)
}

func computeTFNorm(termFreq float64, avgDocLength float64) float64 {
	denominator := termFreq + k1*(1-b+b*avgDocLength)
	return (termFreq * (k1 + 1)) / denominator
}
