// cma: a tool for assessing cytosine methylation calls against known-truth labels.
// Copyright (c) 2018-2021 Wade2016.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/Wade2016/CytosineMethylationAnalysis/blob/master/LICENSE.txt>.

package aln

import (
	"errors"
	"log"
	"sort"
)

// Classifications of a GATC motif on a single molecule.
const (
	MotifUnmethylated   = "unmethylated"
	MotifMethylated     = "methylated"
	MotifHemiMethylated = "hemi-methylated"
	MotifUnclassified   = "unclassified"
)

// MotifCall classifies the methylation state of one GATC motif on one read.
// RefPos is the position of the adenine on the template strand; the paired
// complement-strand adenine sits at RefPos+1.
type MotifCall struct {
	RefPos    int64
	ReadLabel string
	ReadScore float64
	Class     string
}

// CallGatcMotifs calls every site of one read under the adenine alphabet and
// pairs adjacent calls into motif classifications: both adenines canonical is
// unmethylated, both 6-mA is methylated, a disagreement is hemi-methylated,
// and a site call without evidence leaves the motif unclassified. Motifs
// missing a partner site altogether are skipped with a diagnostic.
func CallGatcMotifs(read *Alignment, threshold float64) ([]MotifCall, error) {
	score, err := read.ScoreRead()
	if err != nil {
		return nil, err
	}
	label := read.Records[0].ReadLabel
	sites, grouped := read.GroupBySite()
	calls := make(map[int64]string, len(sites))
	for _, site := range sites {
		call, err := grouped[site].CallSite(Adenine, threshold)
		if err != nil {
			if errors.Is(err, ErrDegenerateDistribution) {
				calls[site] = ""
				continue
			}
			return nil, err
		}
		calls[site] = call.Base
	}
	positions := make([]int64, 0, len(calls))
	for site := range calls {
		positions = append(positions, site)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })

	motifs := make([]MotifCall, 0, len(positions)/2)
	for i := 0; i < len(positions); i += 2 {
		site := positions[i]
		rcSite := site + 1
		call, ok := calls[site]
		rcCall, rcOk := calls[rcSite]
		if !ok || !rcOk {
			log.Printf("skipping motif at %v for read %v: no paired site", site, label)
			continue
		}
		var class string
		switch {
		case call == "" || rcCall == "":
			class = MotifUnclassified
		case call == rcCall && call == "A":
			class = MotifUnmethylated
		case call == rcCall && call == "I":
			class = MotifMethylated
		default:
			class = MotifHemiMethylated
		}
		motifs = append(motifs, MotifCall{RefPos: site, ReadLabel: label, ReadScore: score, Class: class})
	}
	return motifs, nil
}

// CallSingleMoleculeGatcMethylation classifies the GATC motifs of every read
// in the alignment, in first-seen read order. Reads scoring below
// scoreThreshold are dropped.
func CallSingleMoleculeGatcMethylation(a *Alignment, threshold, scoreThreshold float64) ([]MotifCall, error) {
	labels, grouped := a.GroupByRead()
	motifs := make([]MotifCall, 0)
	for _, label := range labels {
		read := grouped[label]
		score, err := read.ScoreRead()
		if err != nil {
			return nil, err
		}
		if score < scoreThreshold {
			continue
		}
		readMotifs, err := CallGatcMotifs(read, threshold)
		if err != nil {
			return nil, err
		}
		motifs = append(motifs, readMotifs...)
	}
	return motifs, nil
}
