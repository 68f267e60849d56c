// Package blast contains code for parsing tabular BLAST output (outfmt 6)
// extended with the aligned subject sequence.  Each line holds exactly 13
// tab-separated columns:
//
// qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore sseq
//
// There is no header row, and lines may not be quoted or escaped.  The parser
// keeps the original textual form of every column so that records can be
// re-emitted losslessly, and additionally parses the columns used in hit
// comparisons (pident, length, evalue, bitscore) into numeric fields.
package blast

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
)

const (
	// NumColumns is the number of columns in each alignment line.
	NumColumns = 13

	// Long sseq columns can push lines well past bufio's default limit.
	maxLineSize = 64 * 1024 * 1024
)

// Columns lists the column names of the expected BLAST output format, in
// order.
var Columns = []string{
	"qseqid", "sseqid", "pident", "length", "mismatch", "gapopen",
	"qstart", "qend", "sstart", "send", "evalue", "bitscore", "sseq",
}

// Record is one parsed alignment line.  The string fields hold the original
// column text; the numeric fields are parsed copies of the columns used when
// ranking hits.
type Record struct {
	// Query and Subject are the qseqid and sseqid columns.
	Query   string
	Subject string
	// PctIdentity, Length, EValue and BitScore are the parsed pident,
	// length, evalue and bitscore columns.
	PctIdentity float64
	Length      int
	EValue      float64
	BitScore    float64
	// Seq is the aligned subject sequence (sseq column).
	Seq string

	fields []string
}

// Fields returns the original 13 column values in schema order.  The caller
// must not modify the returned slice.
func (r *Record) Fields() []string {
	return r.fields
}

// Field returns the original text of the named column.
func (r *Record) Field(name string) string {
	for i, col := range Columns {
		if col == name {
			return r.fields[i]
		}
	}
	return ""
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != NumColumns {
		return Record{}, errors.Errorf("expected %d columns but found %d in line: %q",
			NumColumns, len(fields), line)
	}
	r := Record{
		Query:   fields[0],
		Subject: fields[1],
		Seq:     fields[12],
		fields:  fields,
	}
	var err error
	if r.PctIdentity, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return Record{}, errors.Wrapf(err, "bad pident in line: %q", line)
	}
	if r.Length, err = strconv.Atoi(fields[3]); err != nil {
		return Record{}, errors.Wrapf(err, "bad length in line: %q", line)
	}
	if r.EValue, err = strconv.ParseFloat(fields[10], 64); err != nil {
		return Record{}, errors.Wrapf(err, "bad evalue in line: %q", line)
	}
	if r.BitScore, err = strconv.ParseFloat(fields[11], 64); err != nil {
		return Record{}, errors.Wrapf(err, "bad bitscore in line: %q", line)
	}
	return r, nil
}

// Read parses all alignment records from r, in input order.  Empty lines are
// skipped.  Any malformed line fails the whole parse; no partial result is
// returned.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	var recs []Record
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read BLAST data")
	}
	return recs, nil
}

// ReadPath opens path and parses all alignment records from it.  Compressed
// inputs are transparently decompressed based on the path extension.
func ReadPath(ctx context.Context, path string) ([]Record, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	recs, err := Read(r)
	if e := in.Close(ctx); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return recs, nil
}
