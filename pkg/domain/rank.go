package domain

// Metric selects the scalar results are ranked by. Lower is always better.
type Metric string

const (
	MetricTime        Metric = "generationTimeMs"
	MetricComparisons Metric = "comparisons"
	MetricSwaps       Metric = "swaps"
	MetricSteps       Metric = "steps"
)

// Metrics lists every supported ranking metric.
var Metrics = []Metric{MetricTime, MetricComparisons, MetricSwaps, MetricSteps}

// RankEntry is the place of one finished result under a metric.
type RankEntry struct {
	Place       int     `json:"place"`
	AlgorithmID string  `json:"algorithm_id"`
	MetricValue float64 `json:"metric_value"`

	// Defined is false when the result carries no value for the metric
	// (e.g. swaps of a graph algorithm).
	Defined bool `json:"defined"`
}
