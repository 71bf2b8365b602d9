package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "$scale", cfg.QC.ScaleKeyword)
	assert.Equal(t, "$modelname", cfg.QC.ModelNameKeyword)
	assert.Equal(t, ".vta", cfg.QC.FlexExtension)
	assert.Equal(t, 3, cfg.QC.EyeballDecimals)
	assert.Equal(t, "!qcscale", cfg.VRD.SentinelTag)
	assert.InDelta(t, 0.001, cfg.Limits.MinScale, 1e-12)
	assert.InDelta(t, 0.025, cfg.Limits.RoundingAdvise, 1e-12)
}

func TestLoad_NoOverlay(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	overlay := []byte("qc:\n  suffix_enabled: false\nui:\n  theme: dark\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), overlay, 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.QC.SuffixEnabled)
	assert.Equal(t, "dark", cfg.UI.Theme)
	// Untouched sections keep their defaults.
	assert.Equal(t, "$scale", cfg.QC.ScaleKeyword)
}

func TestLoad_MalformedOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("qc: ["), 0644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QCSCALE_THEME", "light")
	t.Setenv("QCSCALE_SUFFIX", "false")
	t.Setenv("QCSCALE_EYEBALL_DECIMALS", "4")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.QC.SuffixEnabled)
	assert.Equal(t, 4, cfg.QC.EyeballDecimals)
}

func TestEnvOverrides_IgnoreMalformed(t *testing.T) {
	t.Setenv("QCSCALE_SUFFIX", "not-a-bool")
	t.Setenv("QCSCALE_EYEBALL_DECIMALS", "-1")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.QC.SuffixEnabled)
	assert.Equal(t, 3, cfg.QC.EyeballDecimals)
}
