package domain

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// LoadTestSpecification is the file-based form of a load test, loadable from
// yaml or json with util.BindJsonOrYaml. Command-line flags are merged on top
// of it by the CLI.
type LoadTestSpecification struct {
	// Total number of requests to issue across all workers.
	Requests int `json:"requests" yaml:"requests"`
	// Number of concurrent workers.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
	// Tenants to spread requests over, round-robin.
	Tenants []string `json:"tenants" yaml:"tenants"`
	// Dataset requested from each tenant's connector.
	Dataset string `json:"dataset" yaml:"dataset"`
	// Optional row count override passed to the gateway.
	Rows int `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Window over which worker start is staggered, given as a duration
	// string such as "10s".
	RampUp time.Duration `json:"rampUp,omitempty" yaml:"rampUp,omitempty"`
}

// rawLoadTestSpecification is the on-disk form: rampUp is a duration string.
type rawLoadTestSpecification struct {
	Requests    int      `json:"requests" yaml:"requests"`
	Concurrency int      `json:"concurrency" yaml:"concurrency"`
	Tenants     []string `json:"tenants" yaml:"tenants"`
	Dataset     string   `json:"dataset" yaml:"dataset"`
	Rows        int      `json:"rows" yaml:"rows"`
	RampUp      string   `json:"rampUp" yaml:"rampUp"`
}

func (raw *rawLoadTestSpecification) apply(spec *LoadTestSpecification) error {
	spec.Requests = raw.Requests
	spec.Concurrency = raw.Concurrency
	spec.Tenants = raw.Tenants
	spec.Dataset = raw.Dataset
	spec.Rows = raw.Rows
	if raw.RampUp != "" {
		rampUp, err := time.ParseDuration(raw.RampUp)
		if err != nil {
			return errors.Wrapf(err, "invalid rampUp %q", raw.RampUp)
		}
		spec.RampUp = rampUp
	}
	return nil
}

func (spec *LoadTestSpecification) UnmarshalYAML(unmarshal func(interface{}) error) error {
	raw := &rawLoadTestSpecification{}
	if err := unmarshal(raw); err != nil {
		return err
	}
	return raw.apply(spec)
}

func (spec *LoadTestSpecification) UnmarshalJSON(data []byte) error {
	raw := &rawLoadTestSpecification{}
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}
	return raw.apply(spec)
}
