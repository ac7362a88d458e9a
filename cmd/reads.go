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
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Wade2016/CytosineMethylationAnalysis/accuracy"
	"github.com/Wade2016/CytosineMethylationAnalysis/aln"
)

// ReadsHelp is the help string for the cma reads command.
const ReadsHelp = "\nreads parameters:\n" +
	"cma reads read-alignment-file\n" +
	"--out file\n" +
	"--label label\n" +
	"--degeneracy twoWay|threeWay|fourWay\n" +
	"[--threshold nr]\n" +
	"[--score-threshold nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Reads implements the cma reads command: per-read call accuracy against a
// single known correct label, for both strands of the read alignment.
func Reads() error {
	var (
		out, label, degeneracy    string
		profile, logPath          string
		threshold, scoreThreshold float64
		timed                     bool
	)

	var flags flag.FlagSet

	flags.StringVar(&out, "out", "", "output file for the per-read accuracy report")
	flags.StringVar(&label, "label", "", "known correct label for every site in the input")
	flags.StringVar(&degeneracy, "degeneracy", "", "degeneracy mode (twoWay, threeWay, or fourWay)")
	flags.Float64Var(&threshold, "threshold", 0.0, "minimum posterior probability for an event to contribute to a site call")
	flags.Float64Var(&scoreThreshold, "score-threshold", 0.0, "minimum read score (0-100) for a read to be called")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 3, ReadsHelp)

	input := getFilename(os.Args[2], ReadsHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}

	if !checkCreate("--out", out) {
		sanityChecksFailed = true
	}

	if label == "" {
		log.Println("Error: Missing correct label. Please add the --label option to your call.")
		sanityChecksFailed = true
	}

	mode, err := aln.ParseMode(degeneracy)
	if err != nil {
		log.Println("Error:", err)
		sanityChecksFailed = true
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, ReadsHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " reads ", input, " --out ", out, " --label ", label, " --degeneracy ", degeneracy)
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
	timedRun(timed, profile, "Loading the read alignment table.", 1, func() {
		table, parseErr = aln.ParseAlignmentFile(input)
	})
	if parseErr != nil {
		return parseErr
	}

	var reportErr error
	timedRun(timed, profile, "Scoring reads against the correct label.", 2, func() {
		reportErr = accuracy.ReadReport(table, mode, threshold, scoreThreshold, label, out)
	})
	return reportErr
}
