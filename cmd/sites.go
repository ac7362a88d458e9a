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

// SitesHelp is the help string for the cma sites command.
const SitesHelp = "\nsites parameters:\n" +
	"cma sites\n" +
	"--unmodified file\n" +
	"--modified file\n" +
	"[--doubly-modified file]\n" +
	"--out file\n" +
	"--strand template|complement\n" +
	"--degeneracy twoWay|threeWay|fourWay\n" +
	"[--threshold nr]\n" +
	"[--score-threshold nr]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Sites implements the cma sites command: per-site call consistency across
// up to three labeled alignment sources.
func Sites() error {
	var (
		unmodified, modified, doublyModified string
		out, strand, degeneracy              string
		profile, logPath                     string
		threshold, scoreThreshold            float64
		timed                                bool
	)

	var flags flag.FlagSet

	flags.StringVar(&unmodified, "unmodified", "", "alignment source with unmodified cytosines (ground truth C)")
	flags.StringVar(&modified, "modified", "", "alignment source with 5-methylcytosines (ground truth E)")
	flags.StringVar(&doublyModified, "doubly-modified", "", "alignment source with 5-hydroxymethylcytosines (ground truth O)")
	flags.StringVar(&out, "out", "", "output file for the per-site accuracy report")
	flags.StringVar(&strand, "strand", "", "strand to assess (template or complement)")
	flags.StringVar(&degeneracy, "degeneracy", "", "degeneracy mode (twoWay, threeWay, or fourWay)")
	flags.Float64Var(&threshold, "threshold", 0.0, "minimum posterior probability for an event to contribute to a site call")
	flags.Float64Var(&scoreThreshold, "score-threshold", 0.0, "minimum read score (0-100) for a read to be called")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(flags, 2, SitesHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	mode, err := aln.ParseMode(degeneracy)
	if err != nil {
		log.Println("Error:", err)
		sanityChecksFailed = true
	}

	sources, err := accuracy.ValidateSources(mode, unmodified, modified, doublyModified)
	if err != nil {
		log.Println("Error:", err)
		sanityChecksFailed = true
	}

	for _, source := range sources {
		if !checkExist("", source.Path) {
			sanityChecksFailed = true
		}
	}

	if !checkCreate("--out", out) {
		sanityChecksFailed = true
	}

	if strand == "" {
		log.Println("Error: Missing strand. Please add the --strand option to your call.")
		sanityChecksFailed = true
	}

	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, SitesHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " sites --unmodified ", unmodified, " --modified ", modified)
	if doublyModified != "" {
		fmt.Fprint(&command, " --doubly-modified ", doublyModified)
	}
	fmt.Fprint(&command, " --out ", out, " --strand ", strand, " --degeneracy ", degeneracy)
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

	var reportErr error
	timedRun(timed, profile, "Tallying site calls across sources.", 1, func() {
		reportErr = accuracy.SiteReport(sources, mode, threshold, scoreThreshold, strand, out)
	})
	return reportErr
}
