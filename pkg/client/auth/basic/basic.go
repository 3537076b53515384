package basic

import (
	"context"
	"encoding/base64"
)

// LoginCredentials implements grpc credentials.PerRPCCredentials for basic auth.
type LoginCredentials struct {
	Username string
	Password string
}

func (c *LoginCredentials) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	token := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	return map[string]string{"authorization": "Basic " + token}, nil
}

func (c *LoginCredentials) RequireTransportSecurity() bool {
	return false
}
