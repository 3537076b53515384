package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightgateproject/flightgate/internal/flightgatectl"
)

func TestLoadTestArgs_Defaults(t *testing.T) {
	cmd := loadTestCmd(flightgatectl.New())
	require.NoError(t, cmd.ParseFlags(nil))

	spec, opts, err := loadTestArgs(cmd)
	require.NoError(t, err)

	assert.Equal(t, 100, spec.Requests)
	assert.Equal(t, 10, opts.Concurrency)
	assert.Equal(t, "sales", spec.Dataset)
	// synthetic tenants when no list is given
	assert.Equal(t, []string{"tenant_001", "tenant_002", "tenant_003", "tenant_004", "tenant_005"}, spec.Tenants)
}

func TestLoadTestArgs_TenantsList(t *testing.T) {
	cmd := loadTestCmd(flightgatectl.New())
	require.NoError(t, cmd.ParseFlags([]string{"--tenants-list", "tenant_a, tenant_b,,tenant_c"}))

	spec, _, err := loadTestArgs(cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant_a", "tenant_b", "tenant_c"}, spec.Tenants)
}

func TestLoadTestArgs_SpecFile(t *testing.T) {
	cmd := loadTestCmd(flightgatectl.New())
	require.NoError(t, cmd.ParseFlags([]string{"--spec", filepath.Join("testdata", "loadtest.yaml")}))

	spec, opts, err := loadTestArgs(cmd)
	require.NoError(t, err)

	assert.Equal(t, 200, spec.Requests)
	assert.Equal(t, 20, opts.Concurrency)
	assert.Equal(t, "dataset_1mb", spec.Dataset)
	assert.Equal(t, []string{"tenant_desktop_cfiot58"}, spec.Tenants)
}

func TestLoadTestArgs_FlagsOverrideSpecFile(t *testing.T) {
	cmd := loadTestCmd(flightgatectl.New())
	require.NoError(t, cmd.ParseFlags([]string{
		"--spec", filepath.Join("testdata", "loadtest.yaml"),
		"--requests", "7",
		"--dataset", "dataset_10mb",
	}))

	spec, opts, err := loadTestArgs(cmd)
	require.NoError(t, err)

	assert.Equal(t, 7, spec.Requests)
	assert.Equal(t, "dataset_10mb", spec.Dataset)
	// values not overridden still come from the file
	assert.Equal(t, 20, opts.Concurrency)
}
