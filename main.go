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

// cma assesses the accuracy of cytosine methylation calls made from
// nanopore signal-level alignments against known-truth labels, either per
// read or per reference site, and classifies single-molecule GATC
// methylation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Wade2016/CytosineMethylationAnalysis/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: reads, sites, gatc")
	fmt.Fprint(os.Stderr, "\n", cmd.ReadsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.SitesHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.GatcHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "reads":
		err = cmd.Reads()
	case "sites":
		err = cmd.Sites()
	case "gatc":
		err = cmd.Gatc()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
