package unique

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/seqlab/hitprep/encoding/blast"
	"github.com/seqlab/hitprep/encoding/fasta"
)

// fastaWrapWidth is the line width used for sequence bodies in the unique
// hits FASTA artifact.
const fastaWrapWidth = 80

// hitID returns the sequential identifier shared by the FASTA and TSV
// artifacts for the idx'th winner (0-based).
func hitID(idx int) string {
	return fmt.Sprintf("hit%d", idx+1)
}

// fastaHeader renders the FASTA header for the idx'th winner.
func fastaHeader(idx int, rec *blast.Record) string {
	return fmt.Sprintf("%s|query:%s|subject:%s|pident:%s|bitscore:%s",
		hitID(idx), rec.Query, rec.Subject, rec.Field("pident"), rec.Field("bitscore"))
}

// WriteFASTA writes one 80-column-wrapped FASTA record per winner to
// fastaPath, in first-seen subject order.  Parent directories are created if
// absent.
func (s *Set) WriteFASTA(ctx context.Context, fastaPath string) (err error) {
	if err = os.MkdirAll(filepath.Dir(fastaPath), 0777); err != nil {
		return err
	}
	var dst file.File
	if dst, err = file.Create(ctx, fastaPath); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := fasta.NewWriter(dst.Writer(ctx), fastaWrapWidth)
	for i, rec := range s.Hits() {
		if err = w.Write(fastaHeader(i, &rec), rec.Seq); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable writes the TSV artifact to tablePath: a header row naming
// unique_id plus the 13 BLAST columns, then one row per winner carrying the
// same hit<N> identifier as the FASTA artifact and the original column
// text.  Parent directories are created if absent.
func (s *Set) WriteTable(ctx context.Context, tablePath string) (err error) {
	if err = os.MkdirAll(filepath.Dir(tablePath), 0777); err != nil {
		return err
	}
	var dst file.File
	if dst, err = file.Create(ctx, tablePath); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("unique_id")
	for _, col := range blast.Columns {
		w.WriteString(col)
	}
	if err = w.EndLine(); err != nil {
		return err
	}
	for i, rec := range s.Hits() {
		w.WriteString(hitID(i))
		for _, field := range rec.Fields() {
			w.WriteString(field)
		}
		if err = w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
