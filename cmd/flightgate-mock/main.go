package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/flightgateproject/flightgate/internal/mockgateway"
)

func main() {
	addr := pflag.String("addr", "localhost:8815", "address to listen on")
	tenants := pflag.String("tenants", "tenant_001,tenant_002,tenant_003,tenant_004,tenant_005",
		"comma-separated tenant ids to serve datasets for")
	verbose := pflag.Bool("verbose", false, "enable debug logging")
	pflag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	gateway := mockgateway.NewDefaultGateway(strings.Split(*tenants, ",")...)
	srv, err := mockgateway.Serve(gateway, *addr)
	if err != nil {
		log.WithError(err).Fatal("failed to start mock gateway")
	}
	defer srv.Shutdown()
	log.Infof("mock gateway listening on %s", srv.Addr())

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel
}
