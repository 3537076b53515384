package domain

import "time"

type QueryStatus string

const (
	QueryStatusSuccess QueryStatus = "Success"
	QueryStatusError   QueryStatus = "Error"
)

// QueryMetrics describes the outcome of a single dataset query against the
// gateway, including per-phase latencies. MetadataLatency covers the
// GetFlightInfo call, TransferLatency the DoGet stream until fully drained.
type QueryMetrics struct {
	Tenant          string        `json:"tenant" yaml:"tenant"`
	Dataset         string        `json:"dataset" yaml:"dataset"`
	Rows            int64         `json:"rows" yaml:"rows"`
	Bytes           int64         `json:"bytes" yaml:"bytes"`
	MetadataLatency time.Duration `json:"metadataLatency" yaml:"metadataLatency"`
	TransferLatency time.Duration `json:"transferLatency" yaml:"transferLatency"`
	TotalLatency    time.Duration `json:"totalLatency" yaml:"totalLatency"`
	Status          QueryStatus   `json:"status" yaml:"status"`
	Error           string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func (m *QueryMetrics) Succeeded() bool {
	return m.Status == QueryStatusSuccess
}

// DatasetInfo is the client-side view of a single flight returned by the
// gateway's ListFlights endpoint.
type DatasetInfo struct {
	Tenant       string `json:"tenant" yaml:"tenant"`
	Dataset      string `json:"dataset" yaml:"dataset"`
	TotalRecords int64  `json:"totalRecords" yaml:"totalRecords"`
	TotalBytes   int64  `json:"totalBytes" yaml:"totalBytes"`
}
