package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func AddGatewayApiConnectionCommandlineArgs(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("gatewayUrl", "localhost:8815", "specify gateway url")
	viper.BindPFlag("gatewayUrl", rootCmd.PersistentFlags().Lookup("gatewayUrl"))
}

// LoadCommandlineArgsFromConfigFile merges config from, in order of
// precedence: the file given by --config, $HOME/.flightgatectl.yaml and
// flightgatectl-defaults.yaml next to the executable.
func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("error finding executable path: %s", err)
	}
	exeDir := filepath.Dir(exePath)
	viper.SetConfigFile(exeDir + "/flightgatectl-defaults.yaml")
	if err := viper.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
		case *os.PathError:
			// No default config is fine
		default:
			return fmt.Errorf("error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("error getting user home directory: %s", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".flightgatectl")
	}

	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Users don't have to provide a config file
		default:
			return fmt.Errorf("error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}

func ExtractCommandlineGatewayApiConnectionDetails() *ApiConnectionDetails {
	apiConnectionDetails := &ApiConnectionDetails{}
	viper.Unmarshal(apiConnectionDetails)
	return apiConnectionDetails
}
