package main

/*
fastq-to-fasta stream-converts gzip-compressed FASTQ libraries into FASTA
files.  By default it scans a directory for files named
"<sample>_R1_R2.fastq.gz" and writes "<sample>.fasta" for each; a single
file can be converted instead with -fastq-file/-output-fasta.  Existing
outputs are skipped unless -force is given.
*/

import (
	"flag"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/seqlab/hitprep/convert"
)

var (
	inputDir    = flag.String("input", "", "Directory containing FASTQ libraries to convert")
	outputDir   = flag.String("output", "", "Destination directory for FASTA files")
	suffix      = flag.String("suffix", convert.DefaultSuffix, "Filename suffix used to detect FASTQ inputs")
	force       = flag.Bool("force", false, "Overwrite existing FASTA files instead of skipping them")
	fastqFile   = flag.String("fastq-file", "", "Convert this single fastq.gz file instead of scanning a directory")
	outputFasta = flag.String("output-fasta", "", "Destination FASTA path when using -fastq-file")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	ctx := vcontext.Background()
	if *fastqFile != "" || *outputFasta != "" {
		if *fastqFile == "" || *outputFasta == "" {
			log.Fatalf("-fastq-file and -output-fasta must be provided together")
		}
		if _, err := file.Stat(ctx, *fastqFile); err != nil {
			log.Fatalf("FASTQ file not found: %s", *fastqFile)
		}
		if _, err := convert.File(ctx, *fastqFile, *outputFasta, *force); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if *inputDir == "" || *outputDir == "" {
		log.Fatalf("provide -input/-output for directory conversion or -fastq-file/-output-fasta for single-file conversion")
	}
	if info, err := os.Stat(*inputDir); err != nil || !info.IsDir() {
		log.Fatalf("input directory not found: %s", *inputDir)
	}
	if err := convert.Dir(ctx, *inputDir, *outputDir, *suffix, *force); err != nil {
		log.Fatalf("%v", err)
	}
}
