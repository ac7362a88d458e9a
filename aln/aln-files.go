package aln

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// MalformedInputError reports a row of an alignment table that does not fit
// the expected 7-column schema.
type MalformedInputError struct {
	Path string
	Line int
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed alignment table %v, line %v: %v", e.Path, e.Line, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// ParseAlignmentFile loads a full signal alignment table into memory.
//
// The table is tab-separated with no header and exactly seven columns:
// event index, reference position, base, posterior probability, strand,
// orientation, and read label.
func ParseAlignmentFile(path string) (a *Alignment, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.FieldsPerRecord = 7
	a = NewAlignment()
	for {
		row, rerr := reader.Read()
		if rerr == io.EOF {
			return a, nil
		}
		if rerr != nil {
			line := 0
			var parseError *csv.ParseError
			if errors.As(rerr, &parseError) {
				line = parseError.Line
			}
			return nil, &MalformedInputError{Path: path, Line: line, Err: rerr}
		}
		// The reader skips blank lines, so ask it where the row really is.
		line, _ := reader.FieldPos(0)
		eventIdx, perr := strconv.ParseInt(row[0], 10, 64)
		if perr != nil {
			return nil, &MalformedInputError{Path: path, Line: line, Err: perr}
		}
		refPos, perr := strconv.ParseInt(row[1], 10, 64)
		if perr != nil {
			return nil, &MalformedInputError{Path: path, Line: line, Err: perr}
		}
		prob, perr := strconv.ParseFloat(row[3], 64)
		if perr != nil {
			return nil, &MalformedInputError{Path: path, Line: line, Err: perr}
		}
		a.Add(&Record{
			EventIdx:  eventIdx,
			RefPos:    refPos,
			Base:      row[2],
			Prob:      prob,
			Strand:    row[4],
			Forward:   row[5] == "forward",
			ReadLabel: row[6],
		})
	}
}
