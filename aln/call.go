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
	"fmt"
	"log"
	"math"

	"github.com/mingzhi/gomath/stat/desc"
)

// Dist maps each base of a degeneracy alphabet to accumulated probability mass.
type Dist map[string]float64

// ErrDegenerateDistribution is returned by Normalize when a distribution holds
// no probability mass, which happens when no record at a site survives the
// posterior threshold.
var ErrDegenerateDistribution = errors.New("no probability mass to normalize")

// NewDist returns a distribution over the mode's alphabet with all mass zero.
func NewDist(mode Mode) Dist {
	dist := make(Dist, len(mode.Bases()))
	for _, base := range mode.Bases() {
		dist[base] = 0
	}
	return dist
}

// Normalize scales dist in place so that its entries sum to 1.
func Normalize(dist Dist) error {
	var total float64
	for _, v := range dist {
		total += v
	}
	if total == 0 {
		return ErrDegenerateDistribution
	}
	for k := range dist {
		dist[k] /= total
	}
	return nil
}

func checkDist(dist Dist, allowedDiff float64) {
	var total float64
	for _, v := range dist {
		total += v
	}
	if math.Abs(1.0-total) > allowedDiff {
		log.Panicf("normalization didn't work, dist: %v", dist)
	}
}

// SiteCall is the consensus call for one reference position within one read.
type SiteCall struct {
	RefPos int64
	Base   string
	Dist   Dist
}

// CallSite aggregates the records of one site, which must all share a
// reference position, into a normalized distribution over the mode's alphabet
// and an arg-max call. Records with a posterior below threshold do not
// contribute; if none survives, the result is ErrDegenerateDistribution.
func (a *Alignment) CallSite(mode Mode, threshold float64) (SiteCall, error) {
	site := a.Records[0].RefPos
	dist := NewDist(mode)
	for _, r := range a.Records {
		if r.RefPos != site {
			return SiteCall{}, fmt.Errorf("call site: record at position %v in a group for position %v", r.RefPos, site)
		}
		if r.Prob < threshold {
			continue
		}
		if _, ok := dist[r.Base]; !ok {
			return SiteCall{}, &LabelAlphabetMismatchError{Base: r.Base, Mode: mode}
		}
		dist[r.Base] += r.Prob
	}
	if err := Normalize(dist); err != nil {
		return SiteCall{}, err
	}
	checkDist(dist, 0.01)
	return SiteCall{RefPos: site, Base: argmax(mode, dist), Dist: dist}, nil
}

// argmax picks the base with the highest mass, walking the alphabet in its
// fixed order so that exact ties resolve to the earliest base.
func argmax(mode Mode, dist Dist) string {
	call := ""
	max := math.Inf(-1)
	for _, base := range mode.Bases() {
		if p := dist[base]; p > max {
			max = p
			call = base
		}
	}
	return call
}

// CallSites calls every distinct position in the alignment, in first-seen
// order. A site where no record survives the threshold is skipped with a
// diagnostic; any other calling error is fatal to the pass.
func (a *Alignment) CallSites(mode Mode, threshold float64) ([]SiteCall, error) {
	sites, grouped := a.GroupBySite()
	calls := make([]SiteCall, 0, len(sites))
	for _, site := range sites {
		call, err := grouped[site].CallSite(mode, threshold)
		if err != nil {
			if errors.Is(err, ErrDegenerateDistribution) {
				log.Printf("skipping site %v: no events with posterior >= %v", site, threshold)
				continue
			}
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// ScoreRead is the mean posterior probability over all of the read's events,
// scaled to a 0-100 range. The score is computed before any thresholding.
func (a *Alignment) ScoreRead() (float64, error) {
	if len(a.Records) == 0 {
		return 0, errors.New("score read: empty record group")
	}
	label := a.Records[0].ReadLabel
	mean := desc.NewMean()
	for _, r := range a.Records {
		if r.ReadLabel != label {
			return 0, fmt.Errorf("score read: record for read %v in a group for read %v", r.ReadLabel, label)
		}
		mean.Increment(r.Prob)
	}
	return 100 * mean.GetResult(), nil
}

// ReadCall is the per-site call set for one read that passed the score gate.
type ReadCall struct {
	Label string
	Score float64
	Sites []SiteCall
}

// CallReads scores and calls every read in the alignment, in first-seen
// order. Reads scoring below scoreThreshold are dropped without diagnostics.
func (a *Alignment) CallReads(mode Mode, threshold, scoreThreshold float64) ([]ReadCall, error) {
	labels, grouped := a.GroupByRead()
	calls := make([]ReadCall, 0, len(labels))
	for _, label := range labels {
		read := grouped[label]
		score, err := read.ScoreRead()
		if err != nil {
			return nil, err
		}
		if score < scoreThreshold {
			continue
		}
		sites, err := read.CallSites(mode, threshold)
		if err != nil {
			return nil, err
		}
		calls = append(calls, ReadCall{Label: label, Score: score, Sites: sites})
	}
	return calls, nil
}
