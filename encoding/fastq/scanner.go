// Package fastq contains code for reading FASTQ sequencing reads.  A FASTQ
// stream holds four lines per read: a header starting with '@', the
// nucleotide sequence, a separator line, and a quality string.
package fastq

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrShort is returned when a FASTQ stream ends in the middle of a
	// four-line read.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when a FASTQ header line does not start
	// with '@'.
	ErrInvalid = errors.New("invalid FASTQ file")
)

const linesPerRead = 4

// A Read is a FASTQ read, comprising an ID, sequence, line 3 ("unknown"),
// and a quality string.  ID is the first whitespace-delimited token of the
// header line, without the leading '@'.
type Read struct {
	ID, Seq, Unk, Qual string
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading FASTQ read data.  The
// Scan method returns the next read, returning a boolean indicating whether
// the read succeeded.  Scanners are not threadsafe.
//
// Scanner validates record framing only: header lines must begin with "@",
// and a stream may not end in the middle of a read.  Sequence, separator and
// quality content pass through unchecked.  Scanner reads one line at a time
// and never buffers more than the current read, so memory use is independent
// of stream size.
type Scanner struct {
	b      *bufio.Scanner
	err    error
	fields Field
}

// Field enumerates FASTQ fields.  It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader.  Fields is a bitset of the fields to read.  A typical
// value would be All or ID|Seq.
func NewScanner(r io.Reader, fields Field) *Scanner {
	return &Scanner{b: bufio.NewScanner(r), fields: fields}
}

// Scan the next read into the provided read.  Scan returns a boolean
// indicating whether the scan succeeded.  Once Scan returns false, it never
// returns true again.  Upon completion, the user should check the Err method
// to determine whether scanning stopped because of an error or because the
// end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	header := f.b.Text()
	if len(header) == 0 || header[0] != '@' {
		f.err = errors.Wrapf(ErrInvalid, "malformed FASTQ header: %q", header)
		return false
	}
	if f.fields&ID != 0 {
		fields := strings.Fields(header[1:])
		if len(fields) == 0 {
			f.err = errors.Wrapf(ErrInvalid, "malformed FASTQ header: %q", header)
			return false
		}
		read.ID = fields[0]
	}
	if !f.scan(1) {
		return false
	}
	if f.fields&Seq != 0 {
		read.Seq = f.b.Text()
	}
	if !f.scan(2) {
		return false
	}
	if f.fields&Unk != 0 {
		read.Unk = f.b.Text()
	}
	if !f.scan(3) {
		return false
	}
	if f.fields&Qual != 0 {
		read.Qual = f.b.Text()
	}
	return true
}

func (f *Scanner) scan(have int) bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errors.Wrapf(ErrShort, "too few lines in FASTQ record: want %d, got %d", linesPerRead, have)
		}
	}
	return ok
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}
