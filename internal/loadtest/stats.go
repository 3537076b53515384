package loadtest

import (
	"math"
	"sort"
	"time"
)

type Statistics struct {
	Min               int64   `json:"min" yaml:"min"`
	Max               int64   `json:"max" yaml:"max"`
	Average           float64 `json:"average" yaml:"average"`
	Variance          float64 `json:"variance" yaml:"variance"`
	StandardDeviation float64 `json:"standardDeviation" yaml:"standardDeviation"`
	P50               int64   `json:"p50" yaml:"p50"`
	P90               int64   `json:"p90" yaml:"p90"`
	P95               int64   `json:"p95" yaml:"p95"`
	P99               int64   `json:"p99" yaml:"p99"`
}

func statistics(durations []time.Duration) *Statistics {
	durationsInt64 := extractDuration(durations)
	sorted := append([]int64{}, durationsInt64...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &Statistics{
		Min:               minInt64(durationsInt64),
		Max:               maxInt64(durationsInt64),
		Average:           avgInt64(durationsInt64),
		Variance:          varianceInt64(durationsInt64),
		StandardDeviation: standardDeviationInt64(durationsInt64),
		P50:               percentileInt64(sorted, 0.50),
		P90:               percentileInt64(sorted, 0.90),
		P95:               percentileInt64(sorted, 0.95),
		P99:               percentileInt64(sorted, 0.99),
	}
}

func extractDuration(input []time.Duration) []int64 {
	output := make([]int64, 0, len(input))
	for _, d := range input {
		output = append(output, int64(d))
	}
	return output
}

func minInt64(input []int64) int64 {
	var m int64
	for i, e := range input {
		if i == 0 || e < m {
			m = e
		}
	}
	return m
}

func maxInt64(input []int64) int64 {
	var m int64
	for i, e := range input {
		if i == 0 || e > m {
			m = e
		}
	}
	return m
}

func sumInt64(input []int64) int64 {
	var sum int64
	for _, e := range input {
		sum += e
	}
	return sum
}

func avgInt64(input []int64) float64 {
	num := len(input)
	if num == 0 {
		return 0
	}
	return float64(sumInt64(input)) / float64(num)
}

func varianceInt64(numbers []int64) float64 {
	if len(numbers) < 2 {
		return 0
	}
	var total float64
	avg := avgInt64(numbers)
	for _, number := range numbers {
		total += math.Pow(float64(number)-avg, 2)
	}
	return total / float64(len(numbers)-1)
}

func standardDeviationInt64(numbers []int64) float64 {
	return math.Sqrt(varianceInt64(numbers))
}

// percentileInt64 returns the nearest-rank percentile of an ascending-sorted
// sample, or 0 for an empty sample.
func percentileInt64(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
