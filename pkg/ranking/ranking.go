// Package ranking orders finished results by a metric.
package ranking

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/algotrace/pkg/domain"
)

// ErrUnknownMetric is returned by ParseMetric for unsupported names.
var ErrUnknownMetric = errors.New("ranking: unknown metric")

// ParseMetric resolves a metric name. Matching is case-insensitive and
// accepts "time" as a short form of generationTimeMs.
func ParseMetric(s string) (domain.Metric, error) {
	name := strings.TrimSpace(s)
	if strings.EqualFold(name, "time") {
		return domain.MetricTime, nil
	}
	for _, m := range domain.Metrics {
		if strings.EqualFold(name, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Value reads metric from a result. ok is false when the result has no value for it.
func Value(r domain.Result, metric domain.Metric) (v float64, ok bool) {
	switch metric {
	case domain.MetricTime:
		return r.GenerationTimeMs, true
	case domain.MetricSteps:
		return float64(r.Stats.Steps), true
	case domain.MetricComparisons:
		return deref(r.Stats.Comparisons)
	case domain.MetricSwaps:
		return deref(r.Stats.Swaps)
	}
	return 0, false
}

func deref(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

type candidate struct {
	result  *domain.Result
	value   float64
	defined bool
}

// Compute ranks the finished results ascending by metric. Results without a
// value for the metric follow every result that has one. Equal values are
// ordered by comparisons, then swaps (each when the two differ; a defined
// count precedes an undefined one), then by algorithm id. Places run 1..n without gaps.
// Compute never fails; an empty or all-failed input yields an empty ranking.
func Compute(results []domain.Result, metric domain.Metric) []domain.RankEntry {
	cands := make([]candidate, 0, len(results))
	for i := range results {
		r := &results[i]
		if r.Status != domain.StatusFinished {
			continue
		}
		v, ok := Value(*r, metric)
		cands = append(cands, candidate{result: r, value: v, defined: ok})
	}

	slices.SortStableFunc(cands, compare)

	entries := make([]domain.RankEntry, len(cands))
	for i, c := range cands {
		entries[i] = domain.RankEntry{
			Place:       i + 1,
			AlgorithmID: c.result.AlgorithmID,
			MetricValue: c.value,
			Defined:     c.defined,
		}
	}
	return entries
}

func compare(a, b candidate) int {
	if a.defined != b.defined {
		if a.defined {
			return -1
		}
		return 1
	}
	if a.defined && a.value != b.value {
		if a.value < b.value {
			return -1
		}
		return 1
	}
	if c, ok := compareOptional(a.result.Stats.Comparisons, b.result.Stats.Comparisons); ok {
		return c
	}
	if c, ok := compareOptional(a.result.Stats.Swaps, b.result.Stats.Swaps); ok {
		return c
	}
	return strings.Compare(a.result.AlgorithmID, b.result.AlgorithmID)
}

// compareOptional orders defined values before undefined ones so the
// chain stays transitive when families are mixed.
func compareOptional(a, b *int) (int, bool) {
	switch {
	case a == nil && b == nil:
		return 0, false
	case a == nil:
		return 1, true
	case b == nil:
		return -1, true
	case *a == *b:
		return 0, false
	}
	if *a < *b {
		return -1, true
	}
	return 1, true
}
