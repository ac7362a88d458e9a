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

package accuracy

import (
	"bufio"
	"errors"
	"fmt"
	"sort"

	"github.com/exascience/pargo/parallel"

	"github.com/Wade2016/CytosineMethylationAnalysis/aln"
	"github.com/Wade2016/CytosineMethylationAnalysis/internal"
)

// Source is one labeled alignment table: every site in it is known to carry
// the Truth base.
type Source struct {
	Path  string
	Truth string
}

// ValidateSources checks that the selected degeneracy mode has the alignment
// sources it needs and tags each present source with its ground-truth label.
// The unmodified and modified sources are always required; the threeWay mode
// additionally requires the doubly-modified (5-hmC) source.
func ValidateSources(mode aln.Mode, unmodified, modified, doublyModified string) ([]Source, error) {
	if unmodified == "" || modified == "" {
		return nil, errors.New("site accuracy requires both an unmodified and a modified alignment source")
	}
	sources := []Source{{Path: unmodified, Truth: "C"}, {Path: modified, Truth: "E"}}
	if doublyModified != "" {
		sources = append(sources, Source{Path: doublyModified, Truth: "O"})
	} else if mode == aln.ThreeWay {
		return nil, errors.New("threeWay degeneracy requires a doubly-modified alignment source")
	}
	return sources, nil
}

// SiteCounter accumulates correct and incorrect call counts per reference
// position, across reads and across labeled alignment sources.
type SiteCounter struct {
	correct   map[int64]int
	incorrect map[int64]int
}

func NewSiteCounter() *SiteCounter {
	return &SiteCounter{
		correct:   make(map[int64]int),
		incorrect: make(map[int64]int),
	}
}

// Tally counts every site call as correct when it matches truth.
func (c *SiteCounter) Tally(calls []aln.ReadCall, truth string) {
	for _, call := range calls {
		for _, site := range call.Sites {
			if site.Base == truth {
				c.correct[site.RefPos]++
			} else {
				c.incorrect[site.RefPos]++
			}
		}
	}
}

// Accuracy returns correct/(correct+incorrect) for pos. A position counted in
// only one of the two tallies reads as zero from the other, and a position
// never counted at all is 0, not a crash.
func (c *SiteCounter) Accuracy(pos int64) float64 {
	correct := c.correct[pos]
	total := correct + c.incorrect[pos]
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Positions returns every counted reference position in ascending order.
func (c *SiteCounter) Positions() []int64 {
	positions := make([]int64, 0, len(c.correct)+len(c.incorrect))
	for pos := range c.correct {
		positions = append(positions, pos)
	}
	for pos := range c.incorrect {
		if _, ok := c.correct[pos]; !ok {
			positions = append(positions, pos)
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	return positions
}

// SiteReport loads every labeled source, tallies its calls on the configured
// strand against its ground-truth label, and writes one line per reference
// position: accuracy, position, strand. Positions are reported in ascending
// order. The source tables load in parallel; tallying runs in the fixed
// source order so identical inputs produce identical report files.
func SiteReport(sources []Source, mode aln.Mode, threshold, scoreThreshold float64, strand, path string) (err error) {
	tables := make([]*aln.Alignment, len(sources))
	errs := make([]error, len(sources))
	loaders := make([]func(), len(sources))
	for i := range sources {
		i := i
		loaders[i] = func() { tables[i], errs[i] = aln.ParseAlignmentFile(sources[i].Path) }
	}
	parallel.Do(loaders...)
	for _, lerr := range errs {
		if lerr != nil {
			return lerr
		}
	}

	counter := NewSiteCounter()
	for i, table := range tables {
		calls, cerr := table.FilterStrand(strand).CallReads(mode, threshold, scoreThreshold)
		if cerr != nil {
			return cerr
		}
		counter.Tally(calls, sources[i].Truth)
	}

	out := internal.FileCreate(path)
	defer func() {
		nerr := out.Close()
		if err == nil {
			err = nerr
		}
	}()
	writer := bufio.NewWriter(out)
	for _, pos := range counter.Positions() {
		fmt.Fprintf(writer, "%v\t%v\t%v\n", counter.Accuracy(pos), pos, strand)
	}
	return writer.Flush()
}
