package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/flightgateproject/flightgate/cmd/flightgatectl/cmd"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if err := cmd.RootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
