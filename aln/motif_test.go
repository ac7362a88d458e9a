package aln

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func motifRead(label string, templateBase, complementBase string, prob float64) *Alignment {
	return alignment(
		&Record{RefPos: 100, Base: templateBase, Prob: prob, Strand: "template", ReadLabel: label},
		&Record{RefPos: 101, Base: complementBase, Prob: prob, Strand: "complement", ReadLabel: label},
	)
}

func TestCallGatcMotifs(t *testing.T) {
	cases := []struct {
		templateBase, complementBase, class string
	}{
		{"A", "A", MotifUnmethylated},
		{"I", "I", MotifMethylated},
		{"A", "I", MotifHemiMethylated},
		{"I", "A", MotifHemiMethylated},
	}
	for _, c := range cases {
		motifs, err := CallGatcMotifs(motifRead("read1", c.templateBase, c.complementBase, 0.9), 0.1)
		if err != nil {
			t.Fatal(err)
		}
		if assert.Len(t, motifs, 1) {
			assert.Equal(t, c.class, motifs[0].Class)
			assert.Equal(t, int64(100), motifs[0].RefPos)
			assert.InDelta(t, 90.0, motifs[0].ReadScore, 1e-9)
		}
	}
}

func TestCallGatcMotifsUnclassified(t *testing.T) {
	// The complement site exists but none of its events survive the
	// threshold, so the motif cannot be classified.
	read := alignment(
		&Record{RefPos: 100, Base: "A", Prob: 0.9, Strand: "template", ReadLabel: "read1"},
		&Record{RefPos: 101, Base: "A", Prob: 0.2, Strand: "complement", ReadLabel: "read1"},
	)
	motifs, err := CallGatcMotifs(read, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, motifs, 1) {
		assert.Equal(t, MotifUnclassified, motifs[0].Class)
	}
}

func TestCallGatcMotifsMissingPartner(t *testing.T) {
	read := alignment(
		&Record{RefPos: 100, Base: "A", Prob: 0.9, Strand: "template", ReadLabel: "read1"},
	)
	motifs, err := CallGatcMotifs(read, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, motifs)
}

func TestCallSingleMoleculeGatcMethylation(t *testing.T) {
	table := NewAlignment()
	for _, r := range motifRead("read1", "A", "A", 0.9).Records {
		table.Add(r)
	}
	for _, r := range motifRead("read2", "I", "I", 0.9).Records {
		table.Add(r)
	}
	for _, r := range motifRead("read3", "A", "I", 0.9).Records {
		table.Add(r)
	}
	// read4 scores 20 and falls under the score gate.
	for _, r := range motifRead("read4", "I", "I", 0.2).Records {
		table.Add(r)
	}
	motifs, err := CallSingleMoleculeGatcMethylation(table, 0.1, 50.0)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, motifs, 3) {
		assert.Equal(t, MotifUnmethylated, motifs[0].Class)
		assert.Equal(t, "read1", motifs[0].ReadLabel)
		assert.Equal(t, MotifMethylated, motifs[1].Class)
		assert.Equal(t, MotifHemiMethylated, motifs[2].Class)
	}
}
