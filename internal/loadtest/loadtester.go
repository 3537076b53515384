package loadtest

import (
	"context"
	"sync"
	"time"

	"github.com/apache/arrow/go/v10/arrow/flight"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/flightgateproject/flightgate/internal/common/fgerrors"
	"github.com/flightgateproject/flightgate/pkg/client"
	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

// Specification describes a single load test run.
type Specification struct {
	// Total number of requests issued across all workers.
	Requests int
	// Tenants to spread requests over, round-robin.
	Tenants []string
	// Dataset requested from each tenant's connector.
	Dataset string
	// Optional row count override passed with every request.
	Rows int
}

func (spec *Specification) Validate() error {
	if spec.Requests < 1 {
		return errors.WithStack(&fgerrors.ErrInvalidArgument{
			Name:    "Requests",
			Value:   spec.Requests,
			Message: "request count must be positive",
		})
	}
	if len(spec.Tenants) == 0 {
		return errors.WithStack(&fgerrors.ErrInvalidArgument{
			Name:    "Tenants",
			Value:   spec.Tenants,
			Message: "no tenants provided",
		})
	}
	if spec.Dataset == "" {
		return errors.WithStack(&fgerrors.ErrInvalidArgument{
			Name:    "Dataset",
			Value:   spec.Dataset,
			Message: "not provided",
		})
	}
	return nil
}

// LoadTester issues concurrent dataset queries against the gateway.
//
// Every request dials its own connection. This mirrors how independent
// clients reach the gateway in production and gives real network-level
// parallelism rather than multiplexing over a single channel.
type LoadTester struct {
	ApiConnectionDetails *client.ApiConnectionDetails
	// Number of concurrent workers.
	Concurrency int
	// Window over which worker start is staggered.
	RampUp time.Duration
	// Optional metrics sink updated as requests complete.
	Metrics *Metrics

	results []*domain.QueryMetrics
	mu      sync.Mutex
}

func New(apiConnectionDetails *client.ApiConnectionDetails, concurrency int) *LoadTester {
	return &LoadTester{
		ApiConnectionDetails: apiConnectionDetails,
		Concurrency:          concurrency,
	}
}

// Run executes the load test and aggregates the outcome of every request.
// Per-request failures are recorded in the result rather than returned;
// returned errors indicate the test itself could not run to completion.
func (srv *LoadTester) Run(ctx context.Context, spec *Specification) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if srv.Concurrency < 1 {
		return nil, errors.WithStack(&fgerrors.ErrInvalidArgument{
			Name:    "Concurrency",
			Value:   srv.Concurrency,
			Message: "concurrency must be positive",
		})
	}

	concurrency := srv.Concurrency
	if concurrency > spec.Requests {
		concurrency = spec.Requests
	}

	srv.results = make([]*domain.QueryMetrics, 0, spec.Requests)

	requests := make(chan *request, spec.Requests)
	for i := 0; i < spec.Requests; i++ {
		requests <- &request{
			tenant:  spec.Tenants[i%len(spec.Tenants)],
			dataset: spec.Dataset,
			rows:    spec.Rows,
		}
	}
	close(requests)

	var startDelay time.Duration
	if srv.RampUp > 0 && concurrency > 1 {
		startDelay = srv.RampUp / time.Duration(concurrency)
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		workerId := i
		g.Go(func() error {
			if startDelay > 0 {
				select {
				case <-time.After(time.Duration(workerId) * startDelay):
				case <-ctx.Done():
					return nil
				}
			}
			srv.runWorker(ctx, requests)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled run is reported once, not once per worker.
	var workerErrors *multierror.Error
	if err := ctx.Err(); err != nil {
		workerErrors = multierror.Append(workerErrors, err)
	}
	duration := time.Since(start)

	result := newResult(uuid.NewString(), spec, srv.results, duration)
	return result, workerErrors.ErrorOrNil()
}

type request struct {
	tenant  string
	dataset string
	rows    int
}

func (srv *LoadTester) runWorker(ctx context.Context, requests <-chan *request) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			srv.record(srv.runRequest(ctx, req))
		}
	}
}

func (srv *LoadTester) runRequest(ctx context.Context, req *request) *domain.QueryMetrics {
	metrics := &domain.QueryMetrics{Tenant: req.tenant, Dataset: req.dataset, Status: domain.QueryStatusError}
	err := client.WithFlightClient(srv.ApiConnectionDetails, func(c flight.Client) error {
		m, err := client.QueryDataset(ctx, c, req.tenant, req.dataset, req.rows)
		metrics = m
		return err
	})
	if err != nil {
		if metrics.Error == "" {
			metrics.Error = err.Error()
		}
		log.WithError(err).WithField("tenant", req.tenant).Debug("request failed")
	}
	return metrics
}

func (srv *LoadTester) record(metrics *domain.QueryMetrics) {
	if srv.Metrics != nil {
		srv.Metrics.Observe(metrics)
	}
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.results = append(srv.results, metrics)
}
