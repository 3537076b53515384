package loadtest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

// Result is the aggregated outcome of a load test run.
type Result struct {
	RunId         string
	Duration      time.Duration
	TotalRequests int
	Successful    int
	Failed        int
	TotalRows     int64
	TotalBytes    int64
	Latency       *Statistics
	Requests      []*domain.QueryMetrics
}

func newResult(runId string, spec *Specification, requests []*domain.QueryMetrics, duration time.Duration) *Result {
	result := &Result{
		RunId:         runId,
		Duration:      duration,
		TotalRequests: len(requests),
		Requests:      requests,
	}
	var latencies []time.Duration
	for _, r := range requests {
		if !r.Succeeded() {
			result.Failed++
			continue
		}
		result.Successful++
		result.TotalRows += r.Rows
		result.TotalBytes += r.Bytes
		latencies = append(latencies, r.TotalLatency)
	}
	result.Latency = statistics(latencies)
	return result
}

// Throughput returns completed requests per second over the whole run.
func (r *Result) Throughput() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.TotalRequests) / r.Duration.Seconds()
}

// BytesPerSecond returns the payload transfer rate over the whole run.
func (r *Result) BytesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.TotalBytes) / r.Duration.Seconds()
}

// Print writes a human-readable summary of the run to out.
func (r *Result) Print(out io.Writer) {
	fmt.Fprintf(out, "\nLoad test results (run %s):\n\n", r.RunId)

	w := tabwriter.NewWriter(out, 1, 1, 1, ' ', 0)
	fmt.Fprintf(w, "Duration:\t%s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Total requests:\t%d\n", r.TotalRequests)
	fmt.Fprintf(w, "Successful:\t%d\n", r.Successful)
	fmt.Fprintf(w, "Failed:\t%d\n", r.Failed)
	fmt.Fprintf(w, "Throughput:\t%.2f req/s\n", r.Throughput())
	fmt.Fprintf(w, "Total rows:\t%d\n", r.TotalRows)
	fmt.Fprintf(w, "Total data:\t%.2f MB (%.2f MB/s)\n", mb(r.TotalBytes), r.BytesPerSecond()/(1<<20))
	w.Flush()

	fmt.Fprintf(out, "\nLatency:\n")
	w = tabwriter.NewWriter(out, 1, 1, 1, ' ', 0)
	fmt.Fprintf(w, "min:\t%s\n", time.Duration(r.Latency.Min).Round(time.Microsecond))
	fmt.Fprintf(w, "max:\t%s\n", time.Duration(r.Latency.Max).Round(time.Microsecond))
	fmt.Fprintf(w, "avg:\t%s\n", time.Duration(r.Latency.Average).Round(time.Microsecond))
	fmt.Fprintf(w, "stddev:\t%s\n", time.Duration(r.Latency.StandardDeviation).Round(time.Microsecond))
	fmt.Fprintf(w, "p50:\t%s\n", time.Duration(r.Latency.P50).Round(time.Microsecond))
	fmt.Fprintf(w, "p90:\t%s\n", time.Duration(r.Latency.P90).Round(time.Microsecond))
	fmt.Fprintf(w, "p95:\t%s\n", time.Duration(r.Latency.P95).Round(time.Microsecond))
	fmt.Fprintf(w, "p99:\t%s\n", time.Duration(r.Latency.P99).Round(time.Microsecond))
	w.Flush()
}

// exportedResult is the serialized form of a Result: run totals nested under
// summary, latency figures in milliseconds, duration in seconds.
type exportedResult struct {
	RunId   string                 `json:"runId" yaml:"runId"`
	Summary *exportedSummary       `json:"summary" yaml:"summary"`
	Latency *exportedLatency       `json:"latency" yaml:"latency"`
	Results []*domain.QueryMetrics `json:"results" yaml:"results"`
}

type exportedSummary struct {
	Duration   float64 `json:"duration" yaml:"duration"`
	Requests   int     `json:"requests" yaml:"requests"`
	Successful int     `json:"successful" yaml:"successful"`
	Failed     int     `json:"failed" yaml:"failed"`
	TotalRows  int64   `json:"totalRows" yaml:"totalRows"`
	TotalBytes int64   `json:"totalBytes" yaml:"totalBytes"`
}

type exportedLatency struct {
	Avg    float64 `json:"avg" yaml:"avg"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	P50    float64 `json:"p50" yaml:"p50"`
	P90    float64 `json:"p90" yaml:"p90"`
	P95    float64 `json:"p95" yaml:"p95"`
	P99    float64 `json:"p99" yaml:"p99"`
}

func (r *Result) exported() *exportedResult {
	return &exportedResult{
		RunId: r.RunId,
		Summary: &exportedSummary{
			Duration:   r.Duration.Seconds(),
			Requests:   r.TotalRequests,
			Successful: r.Successful,
			Failed:     r.Failed,
			TotalRows:  r.TotalRows,
			TotalBytes: r.TotalBytes,
		},
		Latency: &exportedLatency{
			Avg:    millis(r.Latency.Average),
			Min:    millis(float64(r.Latency.Min)),
			Max:    millis(float64(r.Latency.Max)),
			StdDev: millis(r.Latency.StandardDeviation),
			P50:    millis(float64(r.Latency.P50)),
			P90:    millis(float64(r.Latency.P90)),
			P95:    millis(float64(r.Latency.P95)),
			P99:    millis(float64(r.Latency.P99)),
		},
		Results: r.Requests,
	}
}

// Export writes the full result to filePath as json or yaml, selected by the
// file extension (json by default).
func (r *Result) Export(filePath string) error {
	var data []byte
	var err error
	if strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml") {
		data, err = yaml.Marshal(r.exported())
	} else {
		data, err = json.MarshalIndent(r.exported(), "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

func millis(nanos float64) float64 {
	return nanos / float64(time.Millisecond)
}

func mb(bytes int64) float64 {
	return float64(bytes) / (1 << 20)
}
