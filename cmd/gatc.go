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

package cmd

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Wade2016/CytosineMethylationAnalysis/aln"
	"github.com/Wade2016/CytosineMethylationAnalysis/internal"
)

// GatcHelp is the help string for the cma gatc command.
const GatcHelp = "\ngatc parameters:\n" +
	"cma gatc alignment-file\n" +
	"--out file\n" +
	"[--threshold nr]\n" +
	"[--score-threshold nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Gatc implements the cma gatc command: single-molecule methylation calls for
// paired GATC motif sites, one classification line per motif per read.
func Gatc() error {
	var (
		out, profile, logPath     string
		threshold, scoreThreshold float64
		timed                     bool
	)

	var flags flag.FlagSet

	flags.StringVar(&out, "out", "", "output file for the motif classification report")
	flags.Float64Var(&threshold, "threshold", 0.0, "minimum posterior probability for an event to contribute to a site call")
	flags.Float64Var(&scoreThreshold, "score-threshold", 0.0, "minimum read score (0-100) for a read to be called")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 3, GatcHelp)

	input := getFilename(os.Args[2], GatcHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}

	if !checkCreate("--out", out) {
		sanityChecksFailed = true
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, GatcHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " gatc ", input, " --out ", out)
	fmt.Fprint(&command, " --threshold ", threshold, " --score-threshold ", scoreThreshold)
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	var table *aln.Alignment
	var parseErr error
	timedRun(timed, profile, "Loading the alignment table.", 1, func() {
		table, parseErr = aln.ParseAlignmentFile(input)
	})
	if parseErr != nil {
		return parseErr
	}

	var motifs []aln.MotifCall
	var callErr error
	timedRun(timed, profile, "Calling single-molecule GATC methylation.", 2, func() {
		motifs, callErr = aln.CallSingleMoleculeGatcMethylation(table, threshold, scoreThreshold)
	})
	if callErr != nil {
		return callErr
	}

	return writeMotifReport(motifs, out)
}

func writeMotifReport(motifs []aln.MotifCall, path string) (err error) {
	out := internal.FileCreate(path)
	defer func() {
		nerr := out.Close()
		if err == nil {
			err = nerr
		}
	}()
	writer := bufio.NewWriter(out)
	for _, m := range motifs {
		fmt.Fprintf(writer, "%v\t%v\t%v\t%v\n", m.RefPos, m.Class, m.ReadScore, m.ReadLabel)
	}
	return writer.Flush()
}
