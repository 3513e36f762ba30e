package main

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
)

// payeeSimilarityThreshold is the minimum similarity for two normalized
// payees to count as a fuzzy match.
const payeeSimilarityThreshold = 0.8

// Options is the configuration for one detection run, threaded through every
// stage unchanged.
type Options struct {
	Days       int       // inclusive date window radius
	Confidence int       // minimum tier to report, 1-5
	StartDate  time.Time // zero value means no filter
}

func (o Options) validate() error {
	if o.Confidence < 1 || o.Confidence > 5 {
		return errors.Errorf("confidence must be between 1 and 5, got %d", o.Confidence)
	}
	if o.Days < 0 {
		return errors.Errorf("days must not be negative, got %d", o.Days)
	}
	return nil
}

// Pair is a candidate duplicate: two transactions with exactly equal amounts
// whose dates fall within the window. A and B are row ids, A < B.
type Pair struct {
	A, B       int
	Tier       int
	SameDate   bool
	Similarity float64
}

// payeeSimilarity scores two normalized payees in [0, 1] using edit distance
// over the combined length, which matches how difflib-style ratios behave
// for insertions: "starbucks" vs "starbuck" scores 0.94.
func payeeSimilarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	d := levenshtein.ComputeDistance(a, b)
	return float64(total-d) / float64(total)
}

func daysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

// classifyPair assigns a confidence tier to an amount-equal, window-eligible
// pair. Tiers are mutually exclusive: same date outranks window-only, exact
// payee outranks fuzzy. A same-date pair with no payee evidence is tier 1.
func classifyPair(a, b Txn) Pair {
	p := Pair{A: a.Row, B: b.Row}
	if p.B < p.A {
		p.A, p.B = p.B, p.A
	}

	p.SameDate = a.Date.Equal(b.Date)
	exact := len(a.Norm) > 0 && a.Norm == b.Norm
	p.Similarity = payeeSimilarity(a.Norm, b.Norm)
	similar := !exact && p.Similarity >= payeeSimilarityThreshold

	switch {
	case p.SameDate && exact:
		p.Tier = 5
	case p.SameDate && similar:
		p.Tier = 4
	case exact:
		p.Tier = 3
	case similar:
		p.Tier = 2
	default:
		p.Tier = 1
	}
	return p
}

// candidatePairs buckets transactions by exact amount and emits one
// classified pair per in-window combination within each bucket. Nothing is
// ever compared across buckets, so amount equality holds for every pair.
func candidatePairs(txns []Txn, days int) []Pair {
	buckets := make(map[int64][]Txn)
	for _, t := range txns {
		buckets[t.Amount] = append(buckets[t.Amount], t)
	}

	amounts := make([]int64, 0, len(buckets))
	for amt := range buckets {
		amounts = append(amounts, amt)
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i] < amounts[j] })

	var pairs []Pair
	for _, amt := range amounts {
		b := buckets[amt]
		sort.Slice(b, func(i, j int) bool {
			if !b[i].Date.Equal(b[j].Date) {
				return b[i].Date.Before(b[j].Date)
			}
			return b[i].Row < b[j].Row
		})
		for i := 0; i < len(b); i++ {
			for j := i + 1; j < len(b); j++ {
				// Sorted by date, so everything past the window is too.
				if daysBetween(b[i].Date, b[j].Date) > days {
					break
				}
				pairs = append(pairs, classifyPair(b[i], b[j]))
			}
		}
	}
	return pairs
}

// findDuplicates runs the full pipeline: start-date filter, bucketed pair
// generation, clustering at the requested confidence, then the final
// filter-and-rank pass.
func findDuplicates(txns []Txn, opts Options) []Cluster {
	kept := txns
	if !opts.StartDate.IsZero() {
		kept = kept[:0:0]
		for _, t := range txns {
			if !t.Date.Before(opts.StartDate) {
				kept = append(kept, t)
			}
		}
	}
	pairs := candidatePairs(kept, opts.Days)
	clusters := buildClusters(kept, pairs, opts.Confidence)
	return filterClusters(clusters, opts.Confidence)
}
