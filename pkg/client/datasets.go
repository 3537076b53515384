package client

import (
	"context"
	"io"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/pkg/errors"

	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

// ListDatasets enumerates the datasets known to the gateway across all
// connected tenants.
func ListDatasets(ctx context.Context, c flight.Client) ([]*domain.DatasetInfo, error) {
	stream, err := c.ListFlights(ctx, &flight.Criteria{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list datasets")
	}

	var datasets []*domain.DatasetInfo
	for {
		info, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list datasets")
		}
		dataset := &domain.DatasetInfo{
			TotalRecords: info.TotalRecords,
			TotalBytes:   info.TotalBytes,
		}
		if desc := info.FlightDescriptor; desc != nil && len(desc.Path) >= 2 {
			dataset.Tenant = desc.Path[0]
			dataset.Dataset = desc.Path[1]
		}
		datasets = append(datasets, dataset)
	}
	return datasets, nil
}
