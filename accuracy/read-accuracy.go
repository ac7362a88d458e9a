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
	"fmt"
	"io"
	"log"

	"github.com/exascience/pargo/parallel"

	"github.com/Wade2016/CytosineMethylationAnalysis/aln"
	"github.com/Wade2016/CytosineMethylationAnalysis/internal"
)

// Strand values as they appear in signal alignment tables.
const (
	TemplateStrand   = "template"
	ComplementStrand = "complement"
)

// ReadAccuracy computes the fraction of a read's called sites that match the
// known correct label. Reads where every site was skipped carry no evidence
// and are reported as not ok.
func ReadAccuracy(call aln.ReadCall, correctLabel string) (accuracy float64, ok bool) {
	if len(call.Sites) == 0 {
		return 0, false
	}
	correct := 0
	for _, site := range call.Sites {
		if site.Base == correctLabel {
			correct++
		}
	}
	return float64(correct) / float64(len(call.Sites)), true
}

// ReadReport scores every read of the table against the known correct label,
// once per strand, and writes one line per surviving read:
// accuracy, read score, strand, read label, correct label.
//
// The two strand passes run in parallel; output is written template strand
// first so identical inputs produce identical report files.
func ReadReport(table *aln.Alignment, mode aln.Mode, threshold, scoreThreshold float64, correctLabel, path string) (err error) {
	var templateCalls, complementCalls []aln.ReadCall
	var templateErr, complementErr error
	parallel.Do(
		func() {
			templateCalls, templateErr = table.FilterStrand(TemplateStrand).CallReads(mode, threshold, scoreThreshold)
		},
		func() {
			complementCalls, complementErr = table.FilterStrand(ComplementStrand).CallReads(mode, threshold, scoreThreshold)
		},
	)
	if templateErr != nil {
		return templateErr
	}
	if complementErr != nil {
		return complementErr
	}

	out := internal.FileCreate(path)
	defer func() {
		nerr := out.Close()
		if err == nil {
			err = nerr
		}
	}()
	writer := bufio.NewWriter(out)
	writeReadLines(writer, templateCalls, TemplateStrand, correctLabel)
	writeReadLines(writer, complementCalls, ComplementStrand, correctLabel)
	return writer.Flush()
}

func writeReadLines(w io.Writer, calls []aln.ReadCall, strand, correctLabel string) {
	for _, call := range calls {
		accuracy, ok := ReadAccuracy(call, correctLabel)
		if !ok {
			log.Printf("skipping read %v on the %v strand: no called sites", call.Label, strand)
			continue
		}
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", accuracy, call.Score, strand, call.Label, correctLabel)
	}
}
