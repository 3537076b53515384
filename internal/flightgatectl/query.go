package flightgatectl

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/pkg/errors"

	"github.com/flightgateproject/flightgate/internal/common"
	"github.com/flightgateproject/flightgate/pkg/client"
	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

// Query runs a single dataset query and prints per-phase latency metrics.
// The gateway is health-checked first so connectivity problems surface
// before any query is issued.
func (a *App) Query(tenant string, dataset string, rows int) error {
	rowsLabel := "default"
	if rows > 0 {
		rowsLabel = fmt.Sprintf("%d", rows)
	}
	fmt.Fprintf(a.Out, "Running single query for tenant %s, dataset %s, rows %s\n", tenant, dataset, rowsLabel)

	return client.WithFlightClient(a.Params.ApiConnectionDetails, func(c flight.Client) error {
		ctx, cancel := common.ContextWithDefaultTimeout()
		defer cancel()

		if err := client.CheckHealth(ctx, c); err != nil {
			return errors.Wrapf(err, "could not connect to gateway at %s", a.Params.ApiConnectionDetails.GatewayUrl)
		}

		metrics, err := client.QueryDataset(ctx, c, tenant, dataset, rows)
		if err != nil {
			return err
		}
		a.printQueryMetrics(metrics)
		return nil
	})
}

func (a *App) printQueryMetrics(metrics *domain.QueryMetrics) {
	w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Status:\t%s\n", metrics.Status)
	fmt.Fprintf(w, "Tenant:\t%s\n", metrics.Tenant)
	fmt.Fprintf(w, "Dataset:\t%s\n", metrics.Dataset)
	fmt.Fprintf(w, "Rows:\t%d\n", metrics.Rows)
	fmt.Fprintf(w, "Bytes:\t%.2f MB\n", float64(metrics.Bytes)/(1<<20))
	fmt.Fprintf(w, "Metadata latency:\t%s\n", metrics.MetadataLatency.Round(time.Microsecond))
	fmt.Fprintf(w, "Transfer latency:\t%s\n", metrics.TransferLatency.Round(time.Microsecond))
	fmt.Fprintf(w, "Total latency:\t%s\n", metrics.TotalLatency.Round(time.Microsecond))
}
