package client

import (
	"context"
	"io"
	"time"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/avast/retry-go"
	"github.com/pkg/errors"
)

const healthCheckTimeout = 5 * time.Second

// CheckHealth verifies basic connectivity by listing flights, which is a
// cheap call the gateway always answers. Transient failures are retried.
func CheckHealth(ctx context.Context, c flight.Client) error {
	err := retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
			defer cancel()

			stream, err := c.ListFlights(ctx, &flight.Criteria{})
			if err != nil {
				return err
			}
			for {
				if _, err := stream.Recv(); err != nil {
					if err == io.EOF {
						return nil
					}
					return err
				}
			}
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	return errors.Wrap(err, "gateway health check failed")
}
