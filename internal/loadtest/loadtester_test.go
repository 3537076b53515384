package loadtest

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightgateproject/flightgate/internal/common/fgerrors"
	"github.com/flightgateproject/flightgate/internal/mockgateway"
	"github.com/flightgateproject/flightgate/pkg/client"
	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

func TestSpecificationValidate(t *testing.T) {
	valid := Specification{Requests: 10, Tenants: []string{"tenant_001"}, Dataset: "sales"}

	spec := valid
	assert.NoError(t, spec.Validate())

	spec = valid
	spec.Requests = 0
	assertInvalidArgument(t, spec.Validate(), "Requests")

	spec = valid
	spec.Tenants = nil
	assertInvalidArgument(t, spec.Validate(), "Tenants")

	spec = valid
	spec.Dataset = ""
	assertInvalidArgument(t, spec.Validate(), "Dataset")
}

func assertInvalidArgument(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var invalidArgument *fgerrors.ErrInvalidArgument
	require.ErrorAs(t, err, &invalidArgument)
	assert.Equal(t, field, invalidArgument.Name)
}

func TestLoadTester_InvalidConcurrency(t *testing.T) {
	tester := New(&client.ApiConnectionDetails{GatewayUrl: "localhost:8815"}, 0)
	spec := &Specification{Requests: 10, Tenants: []string{"tenant_001"}, Dataset: "sales"}
	_, err := tester.Run(context.Background(), spec)
	assertInvalidArgument(t, err, "Concurrency")
}

func TestLoadTester_Run(t *testing.T) {
	gateway := mockgateway.NewDefaultGateway("tenant_001", "tenant_002")
	srv, err := mockgateway.Serve(gateway, "localhost:0")
	require.NoError(t, err)
	defer srv.Shutdown()

	connectionDetails := &client.ApiConnectionDetails{
		GatewayUrl: srv.Addr().String(),
		ForceNoTls: true,
	}

	tester := New(connectionDetails, 4)
	tester.Metrics = NewMetrics()
	spec := &Specification{
		Requests: 8,
		Tenants:  []string{"tenant_001", "tenant_002"},
		Dataset:  "sales",
		Rows:     50,
	}

	result, err := tester.Run(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, 8, result.TotalRequests)
	assert.Equal(t, 8, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, int64(8*50), result.TotalRows)
	assert.Greater(t, result.TotalBytes, int64(0))
	assert.Greater(t, result.Duration, time.Duration(0))
	assert.Len(t, result.Requests, 8)
}

func TestLoadTester_ConcurrencyCappedAtRequests(t *testing.T) {
	gateway := mockgateway.NewDefaultGateway("tenant_001")
	srv, err := mockgateway.Serve(gateway, "localhost:0")
	require.NoError(t, err)
	defer srv.Shutdown()

	connectionDetails := &client.ApiConnectionDetails{
		GatewayUrl: srv.Addr().String(),
		ForceNoTls: true,
	}

	// more workers than requests: only as many requests as asked for are issued
	tester := New(connectionDetails, 10)
	spec := &Specification{
		Requests: 2,
		Tenants:  []string{"tenant_001"},
		Dataset:  "sales",
		Rows:     10,
	}

	result, err := tester.Run(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRequests)
	assert.Equal(t, 2, result.Successful)
	assert.Len(t, result.Requests, 2)
}

func TestLoadTester_CancelledRunReportedOnce(t *testing.T) {
	connectionDetails := &client.ApiConnectionDetails{
		GatewayUrl: "localhost:8815",
		ForceNoTls: true,
	}

	tester := New(connectionDetails, 4)
	spec := &Specification{
		Requests: 8,
		Tenants:  []string{"tenant_001"},
		Dataset:  "sales",
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := tester.Run(ctx, spec)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)

	// cancellation appears once, not once per worker
	var workerErrors *multierror.Error
	require.ErrorAs(t, err, &workerErrors)
	assert.Len(t, workerErrors.Errors, 1)

	// partial results are still aggregated
	require.NotNil(t, result)
	assert.Equal(t, result.TotalRequests, result.Failed)
}

func TestLoadTester_UnknownTenantsFail(t *testing.T) {
	gateway := mockgateway.NewDefaultGateway("tenant_001")
	srv, err := mockgateway.Serve(gateway, "localhost:0")
	require.NoError(t, err)
	defer srv.Shutdown()

	connectionDetails := &client.ApiConnectionDetails{
		GatewayUrl: srv.Addr().String(),
		ForceNoTls: true,
	}

	tester := New(connectionDetails, 2)
	spec := &Specification{
		// round-robin: half the requests go to the unknown tenant
		Requests: 6,
		Tenants:  []string{"tenant_001", "tenant_unknown"},
		Dataset:  "sales",
		Rows:     10,
	}

	result, err := tester.Run(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalRequests)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 3, result.Failed)

	for _, r := range result.Requests {
		if r.Tenant == "tenant_unknown" {
			assert.Equal(t, domain.QueryStatusError, r.Status)
			assert.NotEmpty(t, r.Error)
		} else {
			assert.Equal(t, domain.QueryStatusSuccess, r.Status)
		}
	}
}
