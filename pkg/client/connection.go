package client

import (
	"strings"
	"time"

	"github.com/apache/arrow/go/v10/arrow/flight"
	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/flightgateproject/flightgate/pkg/client/auth/basic"
)

// ApiConnectionDetails carries everything needed to reach the gateway.
// It is populated from the command line and the config file via viper.
type ApiConnectionDetails struct {
	GatewayUrl string
	BasicAuth  basic.LoginCredentials
	ForceNoTls bool
}

type ConnectionDetails func() *ApiConnectionDetails

// CreateFlightConnection dials the gateway and returns an Arrow Flight client.
// Unary and stream calls are retried with exponential backoff.
func CreateFlightConnection(config *ApiConnectionDetails, additionalDialOptions ...grpc.DialOption) (flight.Client, error) {
	retryOpts := []grpc_retry.CallOption{
		grpc_retry.WithBackoff(grpc_retry.BackoffExponential(1 * time.Second)),
		grpc_retry.WithMax(3),
	}

	dialOpts := append(additionalDialOptions,
		grpc.WithDefaultCallOptions(grpc.WaitForReady(true)),
		grpc.WithChainUnaryInterceptor(grpc_retry.UnaryClientInterceptor(retryOpts...)),
		grpc.WithChainStreamInterceptor(grpc_retry.StreamClientInterceptor(retryOpts...)),
		transportCredentials(config))

	if config.BasicAuth.Username != "" {
		dialOpts = append(dialOpts, grpc.WithPerRPCCredentials(&config.BasicAuth))
	}

	return flight.NewClientWithMiddleware(config.GatewayUrl, nil, nil, dialOpts...)
}

func transportCredentials(config *ApiConnectionDetails) grpc.DialOption {
	if !config.ForceNoTls && !strings.Contains(config.GatewayUrl, "localhost") {
		return grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, ""))
	}
	return grpc.WithTransportCredentials(insecure.NewCredentials())
}
