package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightgateproject/flightgate/pkg/client/domain"
)

func TestBindJsonOrYaml_Yaml(t *testing.T) {
	spec := &domain.LoadTestSpecification{}
	err := BindJsonOrYaml(filepath.Join("testdata", "loadtest.yaml"), spec)
	assert.NoError(t, err)
	assert.Equal(t, expectedLoadTestSpecification(), spec)
}

func TestBindJsonOrYaml_Json(t *testing.T) {
	spec := &domain.LoadTestSpecification{}
	err := BindJsonOrYaml(filepath.Join("testdata", "loadtest.json"), spec)
	assert.NoError(t, err)
	assert.Equal(t, expectedLoadTestSpecification(), spec)
}

func TestBindJsonOrYaml_MissingFile(t *testing.T) {
	spec := &domain.LoadTestSpecification{}
	err := BindJsonOrYaml(filepath.Join("testdata", "nope.yaml"), spec)
	assert.Error(t, err)
}

func TestBindJsonOrYaml_InvalidRampUp(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "loadtest.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte("requests: 10\nrampUp: soon\n"), 0o644))

	spec := &domain.LoadTestSpecification{}
	err := BindJsonOrYaml(filePath, spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rampUp")
}

func expectedLoadTestSpecification() *domain.LoadTestSpecification {
	return &domain.LoadTestSpecification{
		Requests:    1000,
		Concurrency: 50,
		Tenants:     []string{"tenant_desktop_cfiot58", "tenant_mobile_ag0x44"},
		Dataset:     "dataset_10mb",
		Rows:        500,
		RampUp:      10 * time.Second,
	}
}
