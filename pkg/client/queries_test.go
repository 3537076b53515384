package client

import (
	"context"
	"testing"
	"time"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/flightgateproject/flightgate/internal/mockgateway"
	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

func withTestGateway(t *testing.T, tenants []string, action func(c flight.Client)) {
	t.Helper()
	gateway := mockgateway.NewDefaultGateway(tenants...)
	srv, err := mockgateway.Serve(gateway, "localhost:0")
	require.NoError(t, err)
	defer srv.Shutdown()

	connectionDetails := &ApiConnectionDetails{
		GatewayUrl: srv.Addr().String(),
		ForceNoTls: true,
	}
	c, err := CreateFlightConnection(connectionDetails)
	require.NoError(t, err)
	defer c.Close()

	action(c)
}

func TestDatasetDescriptor(t *testing.T) {
	desc := DatasetDescriptor("tenant_001", "sales", 0)
	assert.Equal(t, flight.DescriptorPATH, desc.Type)
	assert.Equal(t, []string{"tenant_001", "sales"}, desc.Path)

	desc = DatasetDescriptor("tenant_001", "sales", 500)
	assert.Equal(t, []string{"tenant_001", "sales", "500"}, desc.Path)
}

func TestQueryDataset(t *testing.T) {
	withTestGateway(t, []string{"tenant_001"}, func(c flight.Client) {
		metrics, err := QueryDataset(context.Background(), c, "tenant_001", "sales", 123)
		require.NoError(t, err)

		assert.Equal(t, domain.QueryStatusSuccess, metrics.Status)
		assert.Equal(t, "tenant_001", metrics.Tenant)
		assert.Equal(t, "sales", metrics.Dataset)
		assert.Equal(t, int64(123), metrics.Rows)
		assert.Greater(t, metrics.Bytes, int64(0))
		assert.Greater(t, metrics.MetadataLatency, time.Duration(0))
		assert.Greater(t, metrics.TransferLatency, time.Duration(0))
		assert.Equal(t, metrics.MetadataLatency+metrics.TransferLatency, metrics.TotalLatency)
	})
}

func TestQueryDataset_DefaultRows(t *testing.T) {
	withTestGateway(t, []string{"tenant_001"}, func(c flight.Client) {
		metrics, err := QueryDataset(context.Background(), c, "tenant_001", "sales", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(mockgateway.DefaultRows), metrics.Rows)
	})
}

func TestQueryDataset_UnknownTenant(t *testing.T) {
	withTestGateway(t, []string{"tenant_001"}, func(c flight.Client) {
		metrics, err := QueryDataset(context.Background(), c, "tenant_unknown", "sales", 0)
		require.Error(t, err)
		assert.Equal(t, codes.NotFound, status.Code(errCause(err)))
		assert.Equal(t, domain.QueryStatusError, metrics.Status)
		assert.NotEmpty(t, metrics.Error)
	})
}

// errCause unwraps pkg/errors wrapping so the gRPC status survives inspection.
func errCause(err error) error {
	type causer interface {
		Cause() error
	}
	for {
		cause, ok := err.(causer)
		if !ok {
			return err
		}
		err = cause.Cause()
	}
}

func TestListDatasets(t *testing.T) {
	withTestGateway(t, []string{"tenant_001", "tenant_002"}, func(c flight.Client) {
		datasets, err := ListDatasets(context.Background(), c)
		require.NoError(t, err)

		// both tenants advertise the three default datasets
		assert.Len(t, datasets, 6)
		assert.Equal(t, "tenant_001", datasets[0].Tenant)
		assert.NotEmpty(t, datasets[0].Dataset)
		assert.Greater(t, datasets[0].TotalRecords, int64(0))
	})
}

func TestCheckHealth(t *testing.T) {
	withTestGateway(t, []string{"tenant_001"}, func(c flight.Client) {
		assert.NoError(t, CheckHealth(context.Background(), c))
	})
}
