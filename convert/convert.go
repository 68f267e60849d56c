// Package convert turns gzip-compressed FASTQ files into FASTA files for
// downstream alignment tools.  Reads are streamed one record at a time, so
// memory use is independent of input size.
//
// A whole directory of libraries can be converted in one call; inputs are
// discovered by filename suffix and each output is named after the sample
// (the input filename with the suffix stripped).  Batch conversion is
// fail-fast: the first file that fails a framing or header check aborts the
// batch with that file's error, and outputs already written remain on disk.
package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	pkgerrors "github.com/pkg/errors"
	"github.com/seqlab/hitprep/encoding/fasta"
	"github.com/seqlab/hitprep/encoding/fastq"
)

// DefaultSuffix is the filename suffix used to discover FASTQ inputs in
// directory mode.
const DefaultSuffix = "_R1_R2.fastq.gz"

// File converts one compressed FASTQ file to a FASTA file with unwrapped
// two-line records, preserving read order, and returns the number of reads
// converted.  If destPath already exists and force is false the conversion
// is skipped, reported, and (0, nil) is returned.  Parent directories of
// destPath are created if absent.
func File(ctx context.Context, srcPath, destPath string, force bool) (n int, err error) {
	if !force {
		if _, statErr := file.Stat(ctx, destPath); statErr == nil {
			log.Printf("skip %s: already exists (use force to overwrite)", destPath)
			return 0, nil
		}
	}
	in, err := file.Open(ctx, srcPath)
	if err != nil {
		return 0, err
	}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}

	if err = os.MkdirAll(filepath.Dir(destPath), 0777); err != nil {
		_ = in.Close(ctx)
		return 0, err
	}
	out, err := file.Create(ctx, destPath)
	if err != nil {
		_ = in.Close(ctx)
		return 0, err
	}

	w := fasta.NewWriter(out.Writer(ctx), 0)
	sc := fastq.NewScanner(r, fastq.ID|fastq.Seq)
	var read fastq.Read
	var writeErr error
	for sc.Scan(&read) {
		if writeErr = w.Write(read.ID, read.Seq); writeErr != nil {
			break
		}
		n++
	}
	once := errors.Once{}
	once.Set(out.Close(ctx))
	once.Set(in.Close(ctx))
	if writeErr != nil {
		return 0, writeErr
	}
	if scanErr := sc.Err(); scanErr != nil {
		return 0, pkgerrors.Wrapf(scanErr, "%s", srcPath)
	}
	if err = once.Err(); err != nil {
		return 0, err
	}
	log.Printf("%s -> %s (%d records)", file.Base(srcPath), file.Base(destPath), n)
	return n, nil
}

// Dir converts every file in inDir whose name ends in suffix, in sorted name
// order, writing <sample>.fasta into outDir where sample is the input name
// with the suffix stripped.  Zero matching files is an error naming the
// directory and suffix.
func Dir(ctx context.Context, inDir, outDir, suffix string, force bool) error {
	srcs, err := discover(ctx, inDir, suffix)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		sample := strings.TrimSuffix(file.Base(src), suffix)
		dest := filepath.Join(outDir, sample+".fasta")
		if _, err := File(ctx, src, dest, force); err != nil {
			return err
		}
	}
	return nil
}

func discover(ctx context.Context, inDir, suffix string) ([]string, error) {
	var srcs []string
	lister := file.List(ctx, inDir, false /*recursive*/)
	for lister.Scan() {
		if strings.HasSuffix(lister.Path(), suffix) {
			srcs = append(srcs, lister.Path())
		}
	}
	if err := lister.Err(); err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		return nil, pkgerrors.Errorf("no files ending with %q found in %s", suffix, inDir)
	}
	sort.Strings(srcs)
	return srcs, nil
}
