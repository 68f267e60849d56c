package fasta

import "io"

var newline = []byte{'\n'}

// Writer is a FASTA file writer.
type Writer struct {
	w     io.Writer
	width int
	err   error
}

// NewWriter constructs a new FASTA writer that writes records to the
// underlying writer w.  Sequence lines are wrapped at width characters; a
// width <= 0 writes each sequence on a single line.
func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: w, width: width}
}

// Write writes one FASTA record with the given header (without the leading
// '>') and sequence.  An error is returned if the write failed.
func (w *Writer) Write(header, seq string) error {
	w.writeString(">")
	w.writeln(header)
	if w.width <= 0 {
		w.writeln(seq)
		return w.err
	}
	for len(seq) > w.width {
		w.writeln(seq[:w.width])
		seq = seq[w.width:]
	}
	if len(seq) > 0 {
		w.writeln(seq)
	}
	return w.err
}

func (w *Writer) writeln(line string) {
	w.writeString(line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}
