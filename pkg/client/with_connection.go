package client

import (
	"github.com/apache/arrow/go/v10/arrow/flight"
)

func WithFlightClient(apiConnectionDetails *ApiConnectionDetails, action func(flight.Client) error) error {
	c, err := CreateFlightConnection(apiConnectionDetails)
	if err != nil {
		return err
	}
	defer c.Close()
	return action(c)
}
