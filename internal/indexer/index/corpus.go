package index

import (
	"crypto/sha256"
	"fmt"
	"slices"
)

// Corpus maps document identifiers to their statistics.
//
// EntryCount is the number of directory entries visited by the most recent
// scan, directories and other non-files included. It is not len(Documents)
// and scoring uses it as the corpus size.
type Corpus struct {
	Documents  map[string]DocumentStats `json:"documents"`
	EntryCount int                      `json:"entryCount"`
}

func NewCorpus() *Corpus {
	return &Corpus{
		Documents: make(map[string]DocumentStats),
	}
}

// Has reports whether id has already been indexed.
func (c *Corpus) Has(id string) bool {
	_, ok := c.Documents[id]
	return ok
}

// Add inserts stats under id. Existing documents are never replaced; Add
// returns false when id is already present.
func (c *Corpus) Add(id string, stats DocumentStats) bool {
	if c.Documents == nil {
		c.Documents = make(map[string]DocumentStats)
	}
	if c.Has(id) {
		return false
	}
	c.Documents[id] = stats
	return true
}

func (c *Corpus) Get(id string) (DocumentStats, bool) {
	stats, ok := c.Documents[id]
	return stats, ok
}

func (c *Corpus) Len() int {
	return len(c.Documents)
}

// DocFreq returns the number of documents containing term.
func (c *Corpus) DocFreq(term string) int {
	n := 0
	for _, doc := range c.Documents {
		if doc.Contains(term) {
			n++
		}
	}
	return n
}

// TotalLength sums Length over every document.
func (c *Corpus) TotalLength() int {
	total := 0
	for _, doc := range c.Documents {
		total += doc.Length
	}
	return total
}

// AvgDocLength divides TotalLength by EntryCount. It returns false when
// EntryCount is zero.
func (c *Corpus) AvgDocLength() (float64, bool) {
	if c.EntryCount == 0 {
		return 0, false
	}
	return float64(c.TotalLength()) / float64(c.EntryCount), true
}

// IDs returns the document identifiers in lexical order.
func (c *Corpus) IDs() []string {
	ids := make([]string, 0, len(c.Documents))
	for id := range c.Documents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Fingerprint identifies the corpus content. Documents are never updated
// in place, so the identifier set and EntryCount are enough.
func (c *Corpus) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "entries=%d;", c.EntryCount)
	for _, id := range c.IDs() {
		fmt.Fprintf(h, "%s\x00", id)
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}

func (c *Corpus) Clone() *Corpus {
	out := &Corpus{
		Documents:  make(map[string]DocumentStats, len(c.Documents)),
		EntryCount: c.EntryCount,
	}
	for id, doc := range c.Documents {
		out.Documents[id] = doc.clone()
	}
	return out
}

func (c *Corpus) Equal(other *Corpus) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.EntryCount != other.EntryCount || len(c.Documents) != len(other.Documents) {
		return false
	}
	for id, doc := range c.Documents {
		o, ok := other.Documents[id]
		if !ok || !doc.equal(o) {
			return false
		}
	}
	return true
}
