package merger

import (
	"container/heap"
)

// EmptyResult is printed in place of a result slot once the queue is
// exhausted.
const EmptyResult = "Empty results."

type ScoredDoc struct {
	DocID string `json:"doc_id"`
	Score int64  `json:"score"`
}

// Queue is a max-priority queue of scored documents. Equal scores pop in
// ascending DocID order.
type Queue struct {
	h scoredDocHeap
}

func NewQueue(capacity int) *Queue {
	return &Queue{h: make(scoredDocHeap, 0, capacity)}
}

func (q *Queue) Push(doc ScoredDoc) {
	heap.Push(&q.h, doc)
}

// Pop removes the best remaining document. ok is false once the queue is
// empty.
func (q *Queue) Pop() (doc ScoredDoc, ok bool) {
	if q.h.Len() == 0 {
		return ScoredDoc{}, false
	}
	return heap.Pop(&q.h).(ScoredDoc), true
}

func (q *Queue) Len() int { return q.h.Len() }

// Render lays docs out over k result slots, best first. Slots past the end
// of docs read EmptyResult.
func Render(docs []ScoredDoc, k int) []string {
	slots := make([]string, 0, k)
	for i := 0; i < k; i++ {
		if i < len(docs) {
			slots = append(slots, docs[i].DocID)
			continue
		}
		slots = append(slots, EmptyResult)
	}
	return slots
}

func better(a, b ScoredDoc) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.DocID < b.DocID
}

type scoredDocHeap []ScoredDoc

func (h scoredDocHeap) Len() int { return len(h) }

func (h scoredDocHeap) Less(i, j int) bool { return better(h[i], h[j]) }

func (h scoredDocHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scoredDocHeap) Push(x interface{}) {
	*h = append(*h, x.(ScoredDoc))
}

func (h *scoredDocHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
