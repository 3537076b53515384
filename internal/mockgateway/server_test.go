package mockgateway

import (
	"context"
	"testing"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRowsForDataset(t *testing.T) {
	assert.Equal(t, int64(DefaultRows), RowsForDataset("sales", 0))
	assert.Equal(t, int64(42), RowsForDataset("sales", 42))
	// override wins over the size suffix
	assert.Equal(t, int64(42), RowsForDataset("dataset_10mb", 42))

	assert.Equal(t, int64(10<<20)/approxRowBytes, RowsForDataset("dataset_10mb", 0))
	assert.Equal(t, int64(1<<10)/approxRowBytes, RowsForDataset("dataset_1kb", 0))
	// tiny datasets still produce at least one row
	assert.Equal(t, int64(1), RowsForDataset("dataset_0kb", 0))
}

func TestGetFlightInfo(t *testing.T) {
	gateway := NewDefaultGateway("tenant_001")

	info, err := gateway.GetFlightInfo(context.Background(), &flight.FlightDescriptor{
		Type: flight.DescriptorPATH,
		Path: []string{"tenant_001", "sales", "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), info.TotalRecords)
	assert.Equal(t, int64(100*approxRowBytes), info.TotalBytes)
	require.Len(t, info.Endpoint, 1)
	assert.NotEmpty(t, info.Endpoint[0].Ticket.Ticket)
}

func TestGetFlightInfo_Errors(t *testing.T) {
	gateway := NewDefaultGateway("tenant_001")

	tests := map[string]struct {
		descriptor *flight.FlightDescriptor
		code       codes.Code
	}{
		"unknown tenant": {
			descriptor: &flight.FlightDescriptor{Type: flight.DescriptorPATH, Path: []string{"nope", "sales"}},
			code:       codes.NotFound,
		},
		"path too short": {
			descriptor: &flight.FlightDescriptor{Type: flight.DescriptorPATH, Path: []string{"tenant_001"}},
			code:       codes.InvalidArgument,
		},
		"path too long": {
			descriptor: &flight.FlightDescriptor{Type: flight.DescriptorPATH, Path: []string{"tenant_001", "sales", "10", "extra"}},
			code:       codes.InvalidArgument,
		},
		"bad row count": {
			descriptor: &flight.FlightDescriptor{Type: flight.DescriptorPATH, Path: []string{"tenant_001", "sales", "ten"}},
			code:       codes.InvalidArgument,
		},
		"command descriptor": {
			descriptor: &flight.FlightDescriptor{Type: flight.DescriptorCMD, Cmd: []byte("select")},
			code:       codes.InvalidArgument,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := gateway.GetFlightInfo(context.Background(), tc.descriptor)
			require.Error(t, err)
			assert.Equal(t, tc.code, status.Code(err))
		})
	}
}

func TestGenerateChunk(t *testing.T) {
	rec := generateChunk(memory.DefaultAllocator, 10, 5)
	defer rec.Release()

	assert.Equal(t, int64(5), rec.NumRows())
	assert.Equal(t, int64(3), rec.NumCols())
}
