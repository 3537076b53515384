package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flightgateproject/flightgate/internal/flightgatectl"
	"github.com/flightgateproject/flightgate/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flightgatectl",
		Short: "flightgatectl is a command-line client for the flightgate dataset gateway.",
		Long: `flightgatectl is a command-line client for the flightgate dataset gateway.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
gatewayUrl: localhost:8815
basicAuth:
  username: user1
  password: password123

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.flightgatectl.yaml is used.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.flightgatectl.yaml)")
	client.AddGatewayApiConnectionCommandlineArgs(cmd)

	cmd.AddCommand(
		queryCmd(flightgatectl.New()),
		loadTestCmd(flightgatectl.New()),
		datasetsCmd(flightgatectl.New()),
		healthCmd(flightgatectl.New()),
		versionCmd(flightgatectl.New()),
	)

	return cmd
}

var cfgFile string

func initParams(cmd *cobra.Command, params *flightgatectl.Params) error {
	if err := client.LoadCommandlineArgsFromConfigFile(cfgFile); err != nil {
		return err
	}
	params.ApiConnectionDetails = client.ExtractCommandlineGatewayApiConnectionDetails()
	return nil
}
