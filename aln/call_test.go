package aln

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(pos int64, base string, prob float64, read string) *Record {
	return &Record{RefPos: pos, Base: base, Prob: prob, Strand: "template", ReadLabel: read}
}

func alignment(records ...*Record) *Alignment {
	a := NewAlignment()
	for _, r := range records {
		a.Add(r)
	}
	return a
}

func TestNormalize(t *testing.T) {
	dist := Dist{"C": 0.3, "E": 0.1, "O": 0.6}
	if err := Normalize(dist); err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, v := range dist {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.InDelta(t, 0.3, dist["C"], 1e-9)
}

func TestNormalizeDegenerate(t *testing.T) {
	err := Normalize(NewDist(TwoWay))
	assert.True(t, errors.Is(err, ErrDegenerateDistribution))
}

func TestCallSiteTwoWay(t *testing.T) {
	// 0.6 of the mass for C against 0.4 for E.
	site := alignment(
		record(100, "C", 0.3, "read1"),
		record(100, "C", 0.3, "read1"),
		record(100, "E", 0.4, "read1"),
	)
	call, err := site.CallSite(TwoWay, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "C", call.Base)
	assert.Equal(t, int64(100), call.RefPos)
	assert.InDelta(t, 0.6, call.Dist["C"], 1e-9)
	assert.InDelta(t, 0.4, call.Dist["E"], 1e-9)
}

func TestCallSiteTieBreak(t *testing.T) {
	// On an exact tie the earliest base of the mode's alphabet wins.
	site := alignment(
		record(100, "E", 0.5, "read1"),
		record(100, "C", 0.5, "read1"),
	)
	call, err := site.CallSite(TwoWay, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "C", call.Base)

	site = alignment(
		record(100, "I", 0.5, "read1"),
		record(100, "A", 0.5, "read1"),
	)
	call, err = site.CallSite(Adenine, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "A", call.Base)
}

func TestCallSiteThreshold(t *testing.T) {
	// Dropping a record that does not carry the arg-max never flips the call.
	site := alignment(
		record(100, "C", 0.8, "read1"),
		record(100, "E", 0.1, "read1"),
	)
	unfiltered, err := site.CallSite(TwoWay, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	filtered, err := site.CallSite(TwoWay, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, unfiltered.Base, filtered.Base)
	assert.InDelta(t, 1.0, filtered.Dist["C"], 1e-9)

	// A site with no surviving records is degenerate.
	_, err = site.CallSite(TwoWay, 0.9)
	assert.True(t, errors.Is(err, ErrDegenerateDistribution))
}

func TestCallSitesSkipsEmptySites(t *testing.T) {
	table := alignment(
		record(100, "C", 0.8, "read1"),
		record(101, "E", 0.1, "read1"),
		record(102, "E", 0.7, "read1"),
	)
	calls, err := table.CallSites(TwoWay, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, calls, 2) {
		assert.Equal(t, int64(100), calls[0].RefPos)
		assert.Equal(t, int64(102), calls[1].RefPos)
	}
}

func TestCallSitesFirstSeenOrder(t *testing.T) {
	table := alignment(
		record(200, "C", 0.9, "read1"),
		record(100, "C", 0.9, "read1"),
		record(200, "E", 0.1, "read1"),
		record(150, "E", 0.9, "read1"),
	)
	calls, err := table.CallSites(TwoWay, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	positions := make([]int64, 0, len(calls))
	for _, call := range calls {
		positions = append(positions, call.RefPos)
	}
	assert.Equal(t, []int64{200, 100, 150}, positions)
}

func TestCallSiteAlphabetMismatch(t *testing.T) {
	site := alignment(
		record(100, "C", 0.5, "read1"),
		record(100, "G", 0.5, "read1"),
	)
	_, err := site.CallSite(TwoWay, 0.0)
	var mismatch *LabelAlphabetMismatchError
	if assert.Error(t, err) && assert.True(t, errors.As(err, &mismatch)) {
		assert.Equal(t, "G", mismatch.Base)
		assert.Equal(t, TwoWay, mismatch.Mode)
	}
}

func TestCallSiteMixedPositions(t *testing.T) {
	site := alignment(
		record(100, "C", 0.5, "read1"),
		record(101, "C", 0.5, "read1"),
	)
	_, err := site.CallSite(TwoWay, 0.0)
	assert.Error(t, err)
}

func TestScoreRead(t *testing.T) {
	read := alignment(
		record(100, "C", 0.2, "read1"),
		record(100, "C", 0.4, "read1"),
		record(101, "C", 0.6, "read1"),
	)
	score, err := read.ScoreRead()
	if err != nil {
		t.Fatal(err)
	}
	assert.InDelta(t, 40.0, score, 1e-9)
}

func TestScoreReadMixedReads(t *testing.T) {
	read := alignment(
		record(100, "C", 0.2, "read1"),
		record(100, "C", 0.4, "read2"),
	)
	_, err := read.ScoreRead()
	assert.Error(t, err)
}

func TestCallReadsScoreGate(t *testing.T) {
	// Mean posterior 0.4 scores 40, below a gate of 50.
	table := alignment(
		record(100, "C", 0.2, "read1"),
		record(100, "C", 0.4, "read1"),
		record(101, "C", 0.6, "read1"),
	)
	calls, err := table.CallReads(TwoWay, 0.0, 50.0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, calls)

	calls, err = table.CallReads(TwoWay, 0.0, 40.0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, calls, 1)
}

func TestCallReadsScoreIgnoresThreshold(t *testing.T) {
	// The read score is computed over the unfiltered records, so a high
	// posterior threshold changes the called sites but never the score.
	table := alignment(
		record(100, "C", 0.2, "read1"),
		record(100, "C", 0.4, "read1"),
		record(101, "C", 0.6, "read1"),
	)
	loose, err := table.CallReads(TwoWay, 0.0, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	strict, err := table.CallReads(TwoWay, 0.5, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, loose, 1) && assert.Len(t, strict, 1) {
		assert.Equal(t, loose[0].Score, strict[0].Score)
		assert.Len(t, loose[0].Sites, 2)
		assert.Len(t, strict[0].Sites, 1)
	}
}

func TestCallReadsFirstSeenOrder(t *testing.T) {
	table := alignment(
		record(100, "C", 0.9, "readB"),
		record(100, "C", 0.9, "readA"),
		record(101, "C", 0.9, "readB"),
	)
	calls, err := table.CallReads(TwoWay, 0.0, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, calls, 2) {
		assert.Equal(t, "readB", calls[0].Label)
		assert.Equal(t, "readA", calls[1].Label)
	}
}
