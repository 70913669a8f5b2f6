package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("COOP_SETTINGS", filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, LoadSettings())

	assert.Equal(t, "Cooperativa Estudiantil", Coop.Cooperative.Name)
	assert.Equal(t, "₡", Coop.Cooperative.CurrencySymbol)
	assert.Equal(t, 6, Coop.Liquidation.PeriodYears)
	assert.Equal(t, "LIQ", Coop.Receipts.Series)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coop.yml")
	content := []byte(`cooperative:
  name: CoopeTico R.L.
liquidation:
  period_years: 8
receipts:
  series: REC
`)
	require.NoError(t, ioutil.WriteFile(path, content, 0644))
	t.Setenv("COOP_SETTINGS", path)

	require.NoError(t, LoadSettings())

	assert.Equal(t, "CoopeTico R.L.", Coop.Cooperative.Name)
	// Unset keys keep their defaults.
	assert.Equal(t, "₡", Coop.Cooperative.CurrencySymbol)
	assert.Equal(t, 8, Coop.Liquidation.PeriodYears)
	assert.Equal(t, "REC", Coop.Receipts.Series)
}

func TestLoadSettingsForcesPositivePeriod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coop.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("liquidation:\n  period_years: -3\n"), 0644))
	t.Setenv("COOP_SETTINGS", path)

	require.NoError(t, LoadSettings())

	assert.Equal(t, 6, Coop.Liquidation.PeriodYears)
}

func TestLoadSettingsRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coop.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("cooperative: [not: a map\n"), 0644))
	t.Setenv("COOP_SETTINGS", path)

	assert.Error(t, LoadSettings())
}
