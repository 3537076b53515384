package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flightgateproject/flightgate/internal/flightgatectl"
)

func datasetsCmd(a *flightgatectl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets the gateway knows about, across all tenants.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Datasets()
		},
	}
	return cmd
}
