package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightgateproject/flightgate/internal/flightgatectl"
)

func queryCmd(a *flightgatectl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a single dataset query against the gateway.",
		Long: `Run a single dataset query against the gateway and print per-phase latency metrics.

The gateway resolves --tenant to a connector and streams back the requested dataset.
If --rows is given it overrides the dataset's natural size.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tenant, err := cmd.Flags().GetString("tenant")
			if err != nil {
				return fmt.Errorf("error reading tenant: %s", err)
			}
			dataset, err := cmd.Flags().GetString("dataset")
			if err != nil {
				return fmt.Errorf("error reading dataset: %s", err)
			}
			rows, err := cmd.Flags().GetInt("rows")
			if err != nil {
				return fmt.Errorf("error reading rows: %s", err)
			}
			return a.Query(tenant, dataset, rows)
		},
	}
	cmd.Flags().String("tenant", "tenant_default", "Tenant id the gateway routes the query to")
	cmd.Flags().String("dataset", "sales", "Dataset name")
	cmd.Flags().Int("rows", 0, "Number of rows to request (optional)")
	return cmd
}
