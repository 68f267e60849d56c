package main

/*
blast-unique-hits collapses tabular BLAST output (outfmt 6 with an sseq
column) into one best hit per subject sequence and writes two synchronized
artifacts: a FASTA file of the winning subject sequences and a TSV table
describing each winner.  The hit<N> identifier in the FASTA headers joins
the two outputs.
*/

import (
	"flag"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/seqlab/hitprep/encoding/blast"
	"github.com/seqlab/hitprep/unique"
)

var (
	blastTSV    = flag.String("blast-tsv", "", "Combined BLAST tabular file (outfmt 6 with sseq column)")
	uniqueFasta = flag.String("unique-fasta", "", "Output FASTA path for unique hit sequences")
	uniqueTable = flag.String("unique-table", "", "Output TSV path describing each unique hit")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *blastTSV == "" || *uniqueFasta == "" || *uniqueTable == "" {
		log.Fatalf("-blast-tsv, -unique-fasta and -unique-table are all required")
	}
	ctx := vcontext.Background()
	if _, err := file.Stat(ctx, *blastTSV); err != nil {
		log.Fatalf("BLAST file not found: %s", *blastTSV)
	}

	recs, err := blast.ReadPath(ctx, *blastTSV)
	if err != nil {
		log.Fatalf("%v", err)
	}
	set := unique.Select(recs)
	if set.Len() == 0 {
		log.Printf("no hits found in %s; skipping %s and %s", *blastTSV, *uniqueFasta, *uniqueTable)
		return
	}
	if err := set.WriteFASTA(ctx, *uniqueFasta); err != nil {
		log.Fatalf("%v", err)
	}
	if err := set.WriteTable(ctx, *uniqueTable); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("unique hits: %d (FASTA: %s, TSV: %s)", set.Len(), *uniqueFasta, *uniqueTable)
}
