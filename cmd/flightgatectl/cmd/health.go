package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flightgateproject/flightgate/internal/flightgatectl"
)

func healthCmd(a *flightgatectl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the gateway.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Health()
		},
	}
	return cmd
}
