package mockgateway

import (
	"github.com/apache/arrow/go/v10/arrow/flight"
	log "github.com/sirupsen/logrus"
)

// Serve starts a flight service listening on addr (use port 0 for an
// ephemeral port) and returns the running server. The caller is responsible
// for calling Shutdown.
func Serve(g flight.FlightServer, addr string) (flight.Server, error) {
	srv := flight.NewServerWithMiddleware(nil)
	if err := srv.Init(addr); err != nil {
		return nil, err
	}
	srv.RegisterFlightService(g)
	go func() {
		if err := srv.Serve(); err != nil {
			log.WithError(err).Error("mock gateway stopped")
		}
	}()
	return srv, nil
}
