// Package mockgateway is an in-process stand-in for the flightgate gateway.
// It serves synthetic datasets for a fixed set of tenants and is used both by
// the test suites and as a standalone binary for local testing.
package mockgateway

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/apache/arrow/go/v10/arrow/ipc"
	"github.com/apache/arrow/go/v10/arrow/memory"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ticket struct {
	Tenant  string `json:"tenant"`
	Dataset string `json:"dataset"`
	Rows    int64  `json:"rows"`
}

// Gateway implements the subset of the Flight service the real gateway
// exposes to clients: ListFlights, GetFlightInfo and DoGet.
type Gateway struct {
	flight.BaseFlightServer

	mem memory.Allocator
	// datasets known per tenant
	tenants map[string][]string
}

func NewGateway(tenants map[string][]string) *Gateway {
	return &Gateway{
		mem:     memory.DefaultAllocator,
		tenants: tenants,
	}
}

// NewDefaultGateway registers every tenant with a standard set of
// dataset names.
func NewDefaultGateway(tenantIds ...string) *Gateway {
	datasets := []string{"sales", "dataset_1mb", "dataset_10mb"}
	tenants := make(map[string][]string, len(tenantIds))
	for _, id := range tenantIds {
		tenants[id] = datasets
	}
	return NewGateway(tenants)
}

func (g *Gateway) GetFlightInfo(ctx context.Context, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	tenant, dataset, rows, err := g.resolve(desc)
	if err != nil {
		return nil, err
	}
	t := ticket{Tenant: tenant, Dataset: dataset, Rows: rows}
	data, err := json.Marshal(&t)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return g.flightInfo(tenant, dataset, rows, desc, data), nil
}

func (g *Gateway) DoGet(tkt *flight.Ticket, fs flight.FlightService_DoGetServer) error {
	var t ticket
	if err := json.Unmarshal(tkt.Ticket, &t); err != nil {
		return status.Error(codes.InvalidArgument, "malformed ticket")
	}
	if _, ok := g.tenants[t.Tenant]; !ok {
		return status.Errorf(codes.NotFound, "no connector for tenant %q", t.Tenant)
	}

	w := flight.NewRecordWriter(fs, ipc.WithSchema(Schema))
	defer w.Close()

	for offset := int64(0); offset < t.Rows; offset += chunkRows {
		n := t.Rows - offset
		if n > chunkRows {
			n = chunkRows
		}
		rec := generateChunk(g.mem, offset, n)
		err := w.Write(rec)
		rec.Release()
		if err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"tenant": t.Tenant, "dataset": t.Dataset, "rows": t.Rows}).Debug("served dataset")
	return nil
}

func (g *Gateway) ListFlights(c *flight.Criteria, fs flight.FlightService_ListFlightsServer) error {
	tenants := make([]string, 0, len(g.tenants))
	for tenant := range g.tenants {
		tenants = append(tenants, tenant)
	}
	sort.Strings(tenants)

	for _, tenant := range tenants {
		for _, dataset := range g.tenants[tenant] {
			rows := RowsForDataset(dataset, 0)
			desc := &flight.FlightDescriptor{
				Type: flight.DescriptorPATH,
				Path: []string{tenant, dataset},
			}
			if err := fs.Send(g.flightInfo(tenant, dataset, rows, desc, nil)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Gateway) flightInfo(tenant string, dataset string, rows int64, desc *flight.FlightDescriptor, ticketData []byte) *flight.FlightInfo {
	info := &flight.FlightInfo{
		Schema:           flight.SerializeSchema(Schema, g.mem),
		FlightDescriptor: desc,
		TotalRecords:     rows,
		TotalBytes:       rows * approxRowBytes,
	}
	if ticketData != nil {
		info.Endpoint = []*flight.FlightEndpoint{{Ticket: &flight.Ticket{Ticket: ticketData}}}
	}
	return info
}

func (g *Gateway) resolve(desc *flight.FlightDescriptor) (tenant string, dataset string, rows int64, err error) {
	if desc.Type != flight.DescriptorPATH || len(desc.Path) < 2 || len(desc.Path) > 3 {
		return "", "", 0, status.Error(codes.InvalidArgument, "descriptor path must be [tenant, dataset] or [tenant, dataset, rows]")
	}
	tenant = desc.Path[0]
	dataset = desc.Path[1]
	if _, ok := g.tenants[tenant]; !ok {
		return "", "", 0, status.Errorf(codes.NotFound, "no connector for tenant %q", tenant)
	}
	override := 0
	if len(desc.Path) == 3 {
		override, err = strconv.Atoi(desc.Path[2])
		if err != nil || override < 1 {
			return "", "", 0, status.Errorf(codes.InvalidArgument, "invalid row count %q", desc.Path[2])
		}
	}
	return tenant, dataset, RowsForDataset(dataset, override), nil
}
