// Package unique collapses BLAST alignment records into a set holding
// exactly one best record per subject sequence, and writes the surviving
// hits as companion FASTA and TSV artifacts.
package unique

import (
	"github.com/seqlab/hitprep/encoding/blast"
)

// Set holds the surviving alignment record for each distinct subject, in
// the order subjects were first seen in the input.  A Set is immutable once
// built.
type Set struct {
	bySubject map[string]blast.Record
	subjects  []string
}

// Select scans records left to right and keeps the best record per subject.
// Within a subject, a candidate displaces the incumbent when it has a longer
// alignment; on equal length, a higher bitscore; on equal bitscore, a lower
// e-value.  A candidate equal on all three always displaces the incumbent,
// so the last of fully tied records survives.
func Select(recs []blast.Record) *Set {
	s := &Set{bySubject: make(map[string]blast.Record)}
	for _, rec := range recs {
		cur, ok := s.bySubject[rec.Subject]
		if !ok {
			s.bySubject[rec.Subject] = rec
			s.subjects = append(s.subjects, rec.Subject)
			continue
		}
		if displaces(&rec, &cur) {
			s.bySubject[rec.Subject] = rec
		}
	}
	return s
}

func displaces(cand, incumbent *blast.Record) bool {
	if cand.Length != incumbent.Length {
		return cand.Length > incumbent.Length
	}
	if cand.BitScore != incumbent.BitScore {
		return cand.BitScore > incumbent.BitScore
	}
	if cand.EValue != incumbent.EValue {
		return cand.EValue < incumbent.EValue
	}
	return true
}

// Len returns the number of distinct subjects in the set.
func (s *Set) Len() int {
	return len(s.subjects)
}

// Subjects returns the subject IDs in first-seen order.  The caller must not
// modify the returned slice.
func (s *Set) Subjects() []string {
	return s.subjects
}

// Hits returns the winning record per subject, in first-seen subject order.
func (s *Set) Hits() []blast.Record {
	hits := make([]blast.Record, 0, len(s.subjects))
	for _, subject := range s.subjects {
		hits = append(hits, s.bySubject[subject])
	}
	return hits
}

// Get returns the winning record for the given subject.
func (s *Set) Get(subject string) (blast.Record, bool) {
	rec, ok := s.bySubject[subject]
	return rec, ok
}
