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

import "fmt"

// Mode is a degeneracy mode: the reduced base alphabet used for calling.
// TwoWay distinguishes cytosine from 5-methylcytosine, ThreeWay additionally
// 5-hydroxymethylcytosine, FourWay calls canonical bases, and Adenine
// distinguishes adenine from 6-methyladenine for GATC motif calling.
type Mode int

const (
	TwoWay Mode = iota
	ThreeWay
	FourWay
	Adenine
)

var modeBases = map[Mode][]string{
	TwoWay:   {"C", "E"},
	ThreeWay: {"C", "E", "O"},
	FourWay:  {"A", "C", "G", "T"},
	Adenine:  {"A", "I"},
}

var modeNames = map[Mode]string{
	TwoWay:   "twoWay",
	ThreeWay: "threeWay",
	FourWay:  "fourWay",
	Adenine:  "adenine",
}

// ParseMode parses a degeneracy mode name. Unrecognized names are an error;
// the four-way alphabet must be requested by name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "twoWay":
		return TwoWay, nil
	case "threeWay":
		return ThreeWay, nil
	case "fourWay":
		return FourWay, nil
	default:
		return 0, fmt.Errorf("unknown degeneracy mode %v (expected twoWay, threeWay, or fourWay)", s)
	}
}

func (m Mode) String() string {
	return modeNames[m]
}

// Bases returns the mode's alphabet in its fixed calling order. Arg-max ties
// resolve to the earliest base in this order.
func (m Mode) Bases() []string {
	return modeBases[m]
}

// LabelAlphabetMismatchError reports a record whose base is not part of the
// degeneracy mode's alphabet, which means the input tables and the configured
// mode disagree.
type LabelAlphabetMismatchError struct {
	Base string
	Mode Mode
}

func (e *LabelAlphabetMismatchError) Error() string {
	return fmt.Sprintf("base %v is not in the %v alphabet %v", e.Base, e.Mode, e.Mode.Bases())
}
