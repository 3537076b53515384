package client

import (
	"context"
	"strconv"
	"time"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/pkg/errors"

	"github.com/flightgateproject/flightgate/internal/common/fgerrors"
	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

// DatasetDescriptor builds the flight descriptor understood by the gateway:
// a path of [tenant, dataset] with an optional trailing row count.
func DatasetDescriptor(tenant string, dataset string, rows int) *flight.FlightDescriptor {
	path := []string{tenant, dataset}
	if rows > 0 {
		path = append(path, strconv.Itoa(rows))
	}
	return &flight.FlightDescriptor{
		Type: flight.DescriptorPATH,
		Path: path,
	}
}

// QueryDataset runs the full query flow against the gateway: GetFlightInfo
// for the dataset followed by DoGet on the returned ticket, draining the
// record stream. It always returns metrics; on failure Status is set to
// Error and the error is additionally returned.
func QueryDataset(ctx context.Context, c flight.Client, tenant string, dataset string, rows int) (*domain.QueryMetrics, error) {
	metrics := &domain.QueryMetrics{Tenant: tenant, Dataset: dataset}

	infoStart := time.Now()
	info, err := c.GetFlightInfo(ctx, DatasetDescriptor(tenant, dataset, rows))
	metrics.MetadataLatency = time.Since(infoStart)
	if err != nil {
		return failQuery(metrics, errors.Wrapf(err, "failed to get flight info for %s/%s", tenant, dataset))
	}
	if len(info.Endpoint) == 0 {
		return failQuery(metrics, errors.WithStack(&fgerrors.ErrNotFound{
			Type:    "endpoint",
			Value:   tenant + "/" + dataset,
			Message: "gateway returned no endpoints",
		}))
	}

	transferStart := time.Now()
	stream, err := c.DoGet(ctx, info.Endpoint[0].Ticket)
	if err != nil {
		metrics.TransferLatency = time.Since(transferStart)
		return failQuery(metrics, errors.Wrapf(err, "failed to open stream for %s/%s", tenant, dataset))
	}
	reader, err := flight.NewRecordReader(stream)
	if err != nil {
		metrics.TransferLatency = time.Since(transferStart)
		return failQuery(metrics, errors.Wrapf(err, "failed to read stream for %s/%s", tenant, dataset))
	}
	defer reader.Release()

	for reader.Next() {
		rec := reader.Record()
		metrics.Rows += rec.NumRows()
		metrics.Bytes += recordSize(rec)
	}
	metrics.TransferLatency = time.Since(transferStart)
	if err := reader.Err(); err != nil {
		return failQuery(metrics, errors.Wrapf(err, "stream failed for %s/%s", tenant, dataset))
	}

	metrics.TotalLatency = metrics.MetadataLatency + metrics.TransferLatency
	metrics.Status = domain.QueryStatusSuccess
	return metrics, nil
}

func failQuery(metrics *domain.QueryMetrics, err error) (*domain.QueryMetrics, error) {
	metrics.TotalLatency = metrics.MetadataLatency + metrics.TransferLatency
	metrics.Status = domain.QueryStatusError
	metrics.Error = err.Error()
	return metrics, err
}

// recordSize approximates the in-memory payload size of a record by summing
// the lengths of all underlying buffers.
func recordSize(rec arrow.Record) int64 {
	var size int64
	for i := 0; i < int(rec.NumCols()); i++ {
		data := rec.Column(i).Data()
		for _, buf := range data.Buffers() {
			if buf != nil {
				size += int64(buf.Len())
			}
		}
	}
	return size
}
