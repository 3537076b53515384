package flightgatectl

import (
	"context"
	"fmt"

	"github.com/apache/arrow/go/v10/arrow/flight"

	"github.com/flightgateproject/flightgate/pkg/client"
)

// Health checks connectivity to the gateway.
func (a *App) Health() error {
	err := client.WithFlightClient(a.Params.ApiConnectionDetails, func(c flight.Client) error {
		return client.CheckHealth(context.Background(), c)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Gateway %s is healthy\n", a.Params.ApiConnectionDetails.GatewayUrl)
	return nil
}
