package aln

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTable(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alignment.tsv")
	if err := os.WriteFile(path, []byte(rows), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseAlignmentFile(t *testing.T) {
	path := writeTable(t,
		"0\t747\tC\t0.91\ttemplate\tforward\tread1\n"+
			"1\t747\tE\t0.09\ttemplate\tforward\tread1\n"+
			"2\t748\tC\t0.88\tcomplement\tbackward\tread2\n")
	table, err := ParseAlignmentFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, table.Records, 3)
	first := table.Records[0]
	assert.Equal(t, int64(0), first.EventIdx)
	assert.Equal(t, int64(747), first.RefPos)
	assert.Equal(t, "C", first.Base)
	assert.Equal(t, 0.91, first.Prob)
	assert.Equal(t, "template", first.Strand)
	assert.True(t, first.Forward)
	assert.Equal(t, "read1", first.ReadLabel)
	assert.False(t, table.Records[2].Forward)
}

func TestParseAlignmentFileShortRow(t *testing.T) {
	path := writeTable(t, "0\t747\tC\t0.91\ttemplate\tforward\n")
	_, err := ParseAlignmentFile(path)
	var malformed *MalformedInputError
	if assert.Error(t, err) && assert.True(t, errors.As(err, &malformed)) {
		assert.Equal(t, 1, malformed.Line)
	}
}

func TestParseAlignmentFileBadNumericField(t *testing.T) {
	path := writeTable(t,
		"0\t747\tC\t0.91\ttemplate\tforward\tread1\n"+
			"1\t747\tC\tnot-a-prob\ttemplate\tforward\tread1\n")
	_, err := ParseAlignmentFile(path)
	var malformed *MalformedInputError
	if assert.Error(t, err) && assert.True(t, errors.As(err, &malformed)) {
		assert.Equal(t, 2, malformed.Line)
	}
}

func TestParseAlignmentFileLineAfterBlankLines(t *testing.T) {
	// Blank lines are skipped by the reader but still count towards the
	// line number reported for a bad row.
	path := writeTable(t,
		"0\t747\tC\t0.91\ttemplate\tforward\tread1\n"+
			"\n"+
			"1\t747\tC\tnot-a-prob\ttemplate\tforward\tread1\n")
	_, err := ParseAlignmentFile(path)
	var malformed *MalformedInputError
	if assert.Error(t, err) && assert.True(t, errors.As(err, &malformed)) {
		assert.Equal(t, 3, malformed.Line)
	}
}

func TestParseAlignmentFileMissing(t *testing.T) {
	_, err := ParseAlignmentFile(filepath.Join(t.TempDir(), "nope.tsv"))
	assert.Error(t, err)
}
