package aln

import "fmt"

// Record is one aligned signal event from a nanopore signal-level alignment
// table: the posterior probability that the event at RefPos supports Base.
type Record struct {
	EventIdx  int64
	RefPos    int64
	Base      string
	Prob      float64
	Strand    string
	Forward   bool
	ReadLabel string
}

func (r *Record) String() string {
	return fmt.Sprintf("pos:%v base:%v prob:%v strand:%v forward:%v read:%v",
		r.RefPos, r.Base, r.Prob, r.Strand, r.Forward, r.ReadLabel)
}

// Alignment is an in-memory alignment table. Records are never mutated after
// load; grouping and filtering produce fresh Alignments sharing the records.
type Alignment struct {
	Records []*Record
}

func NewAlignment() *Alignment {
	return &Alignment{Records: make([]*Record, 0)}
}

func (a *Alignment) Add(r *Record) {
	a.Records = append(a.Records, r)
}

// FilterStrand returns the records whose Strand equals strand, in input order.
func (a *Alignment) FilterStrand(strand string) *Alignment {
	filtered := NewAlignment()
	for _, r := range a.Records {
		if r.Strand == strand {
			filtered.Add(r)
		}
	}
	return filtered
}

// GroupByRead groups the records by read label. The returned slice holds the
// labels in first-seen order; downstream calling order depends on it.
func (a *Alignment) GroupByRead() ([]string, map[string]*Alignment) {
	labels := make([]string, 0)
	grouped := make(map[string]*Alignment)
	for _, r := range a.Records {
		group, ok := grouped[r.ReadLabel]
		if !ok {
			group = NewAlignment()
			grouped[r.ReadLabel] = group
			labels = append(labels, r.ReadLabel)
		}
		group.Add(r)
	}
	return labels, grouped
}

// GroupBySite groups the records by reference position. The returned slice
// holds the positions in first-seen order.
func (a *Alignment) GroupBySite() ([]int64, map[int64]*Alignment) {
	sites := make([]int64, 0)
	grouped := make(map[int64]*Alignment)
	for _, r := range a.Records {
		group, ok := grouped[r.RefPos]
		if !ok {
			group = NewAlignment()
			grouped[r.RefPos] = group
			sites = append(sites, r.RefPos)
		}
		group.Add(r)
	}
	return sites, grouped
}
