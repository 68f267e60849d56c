package convert_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/klauspost/compress/gzip"
	pkgerrors "github.com/pkg/errors"
	"github.com/seqlab/hitprep/convert"
	"github.com/seqlab/hitprep/encoding/fastq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFastqGz(t *testing.T, path string, lines []string) {
	buf := bytes.Buffer{}
	gz := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gz.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0600))
}

func readFile(t *testing.T, path string) string {
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

var lib = []string{
	"@r1 1:N:0:ATCACG", "ACGT", "+", "IIII",
	"@r2", "TTGGCCAA", "+", "IIIIIIII",
}

func TestFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	src := filepath.Join(tempDir, "sampleA_R1_R2.fastq.gz")
	dest := filepath.Join(tempDir, "out", "sampleA.fasta")
	writeFastqGz(t, src, lib)

	n, err := convert.File(ctx, src, dest, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ">r1\nACGT\n>r2\nTTGGCCAA\n", readFile(t, dest))
}

func TestFileSkipsExisting(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	src := filepath.Join(tempDir, "s_R1_R2.fastq.gz")
	dest := filepath.Join(tempDir, "s.fasta")
	writeFastqGz(t, src, lib)
	require.NoError(t, ioutil.WriteFile(dest, []byte("existing\n"), 0600))

	n, err := convert.File(ctx, src, dest, false)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "existing\n", readFile(t, dest))

	// force replaces the stale output.
	n, err = convert.File(ctx, src, dest, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ">r1\nACGT\n>r2\nTTGGCCAA\n", readFile(t, dest))
}

func TestFileIdempotent(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	src := filepath.Join(tempDir, "s_R1_R2.fastq.gz")
	dest := filepath.Join(tempDir, "s.fasta")
	writeFastqGz(t, src, lib)

	_, err := convert.File(ctx, src, dest, true)
	require.NoError(t, err)
	first := readFile(t, dest)
	_, err = convert.File(ctx, src, dest, true)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, dest))
}

func TestFileTruncated(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	src := filepath.Join(tempDir, "s_R1_R2.fastq.gz")
	dest := filepath.Join(tempDir, "s.fasta")
	// Second record ends after its header.
	writeFastqGz(t, src, []string{"@r1", "ACGT", "+", "IIII", "@r2"})

	_, err := convert.File(ctx, src, dest, false)
	require.Error(t, err)
	assert.Equal(t, fastq.ErrShort, pkgerrors.Cause(err))
	assert.Contains(t, err.Error(), src)
}

func TestFileBadHeader(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	src := filepath.Join(tempDir, "s_R1_R2.fastq.gz")
	writeFastqGz(t, src, []string{"r1-missing-marker", "ACGT", "+", "IIII"})

	_, err := convert.File(ctx, src, filepath.Join(tempDir, "s.fasta"), false)
	require.Error(t, err)
	assert.Equal(t, fastq.ErrInvalid, pkgerrors.Cause(err))
	assert.Contains(t, err.Error(), "r1-missing-marker")
}

func TestDir(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	inDir := filepath.Join(tempDir, "in")
	outDir := filepath.Join(tempDir, "out")
	require.NoError(t, os.MkdirAll(inDir, 0777))
	writeFastqGz(t, filepath.Join(inDir, "liver_R1_R2.fastq.gz"), []string{"@a", "ACGT", "+", "IIII"})
	writeFastqGz(t, filepath.Join(inDir, "spleen_R1_R2.fastq.gz"), []string{"@b", "TTGG", "+", "IIII"})
	// Files not matching the suffix are ignored.
	require.NoError(t, ioutil.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("x"), 0600))

	require.NoError(t, convert.Dir(ctx, inDir, outDir, convert.DefaultSuffix, false))
	assert.Equal(t, ">a\nACGT\n", readFile(t, filepath.Join(outDir, "liver.fasta")))
	assert.Equal(t, ">b\nTTGG\n", readFile(t, filepath.Join(outDir, "spleen.fasta")))
}

func TestDirNoMatches(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	err := convert.Dir(ctx, tempDir, tempDir, convert.DefaultSuffix, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), convert.DefaultSuffix)
	assert.Contains(t, err.Error(), tempDir)
}

// A failing file aborts the batch; earlier outputs remain.
func TestDirFailFast(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	inDir := filepath.Join(tempDir, "in")
	outDir := filepath.Join(tempDir, "out")
	require.NoError(t, os.MkdirAll(inDir, 0777))
	writeFastqGz(t, filepath.Join(inDir, "a_R1_R2.fastq.gz"), []string{"@a", "ACGT", "+", "IIII"})
	writeFastqGz(t, filepath.Join(inDir, "b_R1_R2.fastq.gz"), []string{"@b", "TTGG"})

	err := convert.Dir(ctx, inDir, outDir, convert.DefaultSuffix, false)
	require.Error(t, err)
	assert.Equal(t, fastq.ErrShort, pkgerrors.Cause(err))
	assert.Equal(t, ">a\nACGT\n", readFile(t, filepath.Join(outDir, "a.fasta")))
}
