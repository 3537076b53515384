package flightgatectl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/flightgateproject/flightgate/internal/common/logging"
	"github.com/flightgateproject/flightgate/internal/loadtest"
	"github.com/flightgateproject/flightgate/pkg/client"
)

// LoadTestOptions are the runner-level knobs of a load test, as opposed to
// the workload itself which is described by loadtest.Specification.
type LoadTestOptions struct {
	Concurrency int
	RampUp      time.Duration
	// File to export the full result to; json or yaml by extension.
	OutputFile string
	// If non-zero, Prometheus metrics are served on this port for the
	// duration of the run.
	MetricsPort uint16
}

// LoadTest checks gateway health, runs the load test and prints the
// aggregated results.
func (a *App) LoadTest(ctx context.Context, spec *loadtest.Specification, opts LoadTestOptions) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	err := client.WithFlightClient(a.Params.ApiConnectionDetails, func(c flight.Client) error {
		return client.CheckHealth(ctx, c)
	})
	if err != nil {
		return errors.Wrapf(err, "could not connect to gateway at %s", a.Params.ApiConnectionDetails.GatewayUrl)
	}

	fmt.Fprintf(a.Out, "Starting load test:\n")
	fmt.Fprintf(a.Out, "  Requests:    %d\n", spec.Requests)
	fmt.Fprintf(a.Out, "  Concurrency: %d\n", opts.Concurrency)
	fmt.Fprintf(a.Out, "  Tenants:     %d (%s)\n", len(spec.Tenants), summarizeTenants(spec.Tenants))
	fmt.Fprintf(a.Out, "  Dataset:     %s\n", spec.Dataset)
	fmt.Fprintf(a.Out, "  Gateway:     %s\n", a.Params.ApiConnectionDetails.GatewayUrl)

	tester := loadtest.New(a.Params.ApiConnectionDetails, opts.Concurrency)
	tester.RampUp = opts.RampUp

	if opts.MetricsPort != 0 {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		tester.Metrics = loadtest.NewMetrics()
		tester.Metrics.Serve(metricsCtx, opts.MetricsPort)
	}

	result, err := tester.Run(ctx, spec)
	if err != nil {
		if result == nil {
			return err
		}
		logEntry := log.StandardLogger().WithField("gateway", a.Params.ApiConnectionDetails.GatewayUrl)
		logging.WithStacktrace(logEntry, err).Warn("load test did not run to completion")
	}
	result.Print(a.Out)

	if opts.OutputFile != "" {
		if err := result.Export(opts.OutputFile); err != nil {
			return errors.Wrapf(err, "failed to export results to %s", opts.OutputFile)
		}
		fmt.Fprintf(a.Out, "\nResults exported to %s\n", opts.OutputFile)
	}
	return nil
}

func summarizeTenants(tenants []string) string {
	if len(tenants) <= 3 {
		return strings.Join(tenants, ", ")
	}
	return strings.Join(tenants[:3], ", ") + ", ..."
}
