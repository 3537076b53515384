package flightgatectl

import (
	"fmt"
	"text/tabwriter"

	"github.com/apache/arrow/go/v10/arrow/flight"

	"github.com/flightgateproject/flightgate/internal/common"
	"github.com/flightgateproject/flightgate/pkg/client"
)

// Datasets lists the datasets the gateway knows about across all tenants.
func (a *App) Datasets() error {
	return client.WithFlightClient(a.Params.ApiConnectionDetails, func(c flight.Client) error {
		ctx, cancel := common.ContextWithDefaultTimeout()
		defer cancel()

		datasets, err := client.ListDatasets(ctx, c)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
		defer w.Flush()
		fmt.Fprintf(w, "TENANT\tDATASET\tROWS\tBYTES\n")
		for _, d := range datasets {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", d.Tenant, d.Dataset, d.TotalRecords, d.TotalBytes)
		}
		return nil
	})
}
