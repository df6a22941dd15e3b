package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanakalajayanth/sairam-quotation/internal/compositor"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Interiors")
	cfg.Business.Phone = "+91 98765 43210"
	cfg.Export.SettleDelay = 250 * time.Millisecond

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business, got.Business)
	assert.Equal(t, cfg.Document, got.Document)
	assert.Equal(t, cfg.Export, got.Export)
	assert.Equal(t, cfg.Browser, got.Browser)
	assert.Equal(t, cfg.Log, got.Log)
}

func TestDefaults(t *testing.T) {
	cfg := Default("")
	assert.Equal(t, "Sai Ram Interiors", cfg.Business.Name)
	assert.Equal(t, "ESTIMATE", cfg.Document.Title)
	assert.InDelta(t, 210, cfg.Export.PageWidthMM, 0.001)
	assert.InDelta(t, 297, cfg.Export.PageHeightMM, 0.001)
	assert.InDelta(t, 0.2, cfg.Export.EpsilonMM, 0.001)
	assert.Equal(t, 400*time.Millisecond, cfg.Export.SettleDelay)
	assert.Equal(t, "Interior_Estimate.pdf", cfg.Export.DefaultFilename)
	require.NoError(t, cfg.Validate())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "business:\n  name: Kumar Woodworks\nexport:\n  page_break: none\n  settle_delay: 1s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Kumar Woodworks", cfg.Business.Name)
	assert.Equal(t, "none", cfg.Export.PageBreak)
	assert.Equal(t, time.Second, cfg.Export.SettleDelay)
	assert.InDelta(t, 297, cfg.Export.PageHeightMM, 0.001)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default("").Business.Name, cfg.Business.Name)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("export: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default("")
	cfg.Export.PageBreak = "avoid-all"
	assert.Error(t, cfg.Validate())

	cfg = Default("")
	cfg.Export.PageHeightMM = 0
	assert.Error(t, cfg.Validate())

	cfg = Default("")
	cfg.Export.EpsilonMM = -1
	assert.Error(t, cfg.Validate())
}

func TestCompositorConfig(t *testing.T) {
	cc := Default("").Compositor()
	assert.Equal(t, compositor.PageBreakCSS, cc.PageBreak)
	assert.InDelta(t, 2, cc.PixelScale, 0.001)
	assert.Equal(t, "jpeg", cc.ImageFormat)
}
