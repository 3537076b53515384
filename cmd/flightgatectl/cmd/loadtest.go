package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flightgateproject/flightgate/internal/flightgatectl"
	"github.com/flightgateproject/flightgate/internal/loadtest"
	"github.com/flightgateproject/flightgate/pkg/client/domain"
	"github.com/flightgateproject/flightgate/pkg/client/util"
)

func loadTestCmd(a *flightgatectl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load-test",
		Short: "Run a load test against the gateway.",
		Long: `Run a load test against the gateway.

Requests are spread round-robin over the given tenants and executed by a fixed
pool of concurrent workers, each request on its own connection. If no
--tenants-list is given, --tenants-count synthetic tenant ids (tenant_001...)
are used instead.

The workload can also be loaded from a yaml or json file with --spec;
explicitly set flags override values from the file.

Example spec file:

requests: 1000
concurrency: 50
tenants:
  - tenant_desktop_cfiot58
  - tenant_mobile_ag0x44
dataset: dataset_10mb`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, opts, err := loadTestArgs(cmd)
			if err != nil {
				return err
			}

			// Cancel the run on SIGINT/SIGTERM; partial results are still reported.
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			stopSignal := make(chan os.Signal, 1)
			signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-ctx.Done():
					return
				case <-stopSignal:
					cancel()
				}
			}()

			return a.LoadTest(ctx, spec, opts)
		},
	}
	cmd.Flags().Int("requests", 100, "Total number of requests")
	cmd.Flags().Int("concurrency", 10, "Number of concurrent workers")
	cmd.Flags().String("tenants-list", "", "Comma-separated list of tenant ids")
	cmd.Flags().Int("tenants-count", 5, "Number of synthetic tenants, used when no tenants-list is given")
	cmd.Flags().String("dataset", "sales", "Dataset name")
	cmd.Flags().Int("rows", 0, "Number of rows per request (optional)")
	cmd.Flags().Duration("ramp-up", 0, "Window over which worker start is staggered")
	cmd.Flags().String("json", "", "Export full results to this file (json or yaml by extension)")
	cmd.Flags().Uint16("metrics-port", 0, "If set, serve Prometheus metrics on this port during the run")
	cmd.Flags().String("spec", "", "Load the workload from a yaml or json spec file")
	return cmd
}

func loadTestArgs(cmd *cobra.Command) (*loadtest.Specification, flightgatectl.LoadTestOptions, error) {
	var opts flightgatectl.LoadTestOptions

	fileSpec := &domain.LoadTestSpecification{}
	if specFile, _ := cmd.Flags().GetString("spec"); specFile != "" {
		if err := util.BindJsonOrYaml(specFile, fileSpec); err != nil {
			return nil, opts, err
		}
	}

	requests := intArg(cmd, "requests", fileSpec.Requests)
	concurrency := intArg(cmd, "concurrency", fileSpec.Concurrency)
	dataset := stringArg(cmd, "dataset", fileSpec.Dataset)
	rows := intArg(cmd, "rows", fileSpec.Rows)

	tenants := fileSpec.Tenants
	if tenantsList, _ := cmd.Flags().GetString("tenants-list"); tenantsList != "" {
		tenants = splitTenants(tenantsList)
	}
	if len(tenants) == 0 {
		count, err := cmd.Flags().GetInt("tenants-count")
		if err != nil {
			return nil, opts, err
		}
		for i := 1; i <= count; i++ {
			tenants = append(tenants, fmt.Sprintf("tenant_%03d", i))
		}
	}

	rampUp := fileSpec.RampUp
	if cmd.Flags().Changed("ramp-up") {
		rampUp, _ = cmd.Flags().GetDuration("ramp-up")
	}

	opts.Concurrency = concurrency
	opts.RampUp = rampUp
	opts.OutputFile, _ = cmd.Flags().GetString("json")
	opts.MetricsPort, _ = cmd.Flags().GetUint16("metrics-port")

	return &loadtest.Specification{
		Requests: requests,
		Tenants:  tenants,
		Dataset:  dataset,
		Rows:     rows,
	}, opts, nil
}

func splitTenants(list string) []string {
	var tenants []string
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tenants = append(tenants, t)
		}
	}
	return tenants
}

// intArg returns the flag value unless the flag was left at its default and
// the spec file provides a value.
func intArg(cmd *cobra.Command, name string, fromFile int) int {
	if !cmd.Flags().Changed(name) && fromFile != 0 {
		return fromFile
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func stringArg(cmd *cobra.Command, name string, fromFile string) string {
	if !cmd.Flags().Changed(name) && fromFile != "" {
		return fromFile
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}
