package main

import (
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/seamcarver/internal/config"
	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/plan"
)

func newFlags(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestApplyFlagsOverridesOnlyExplicitFlags(t *testing.T) {
	cfg := config.Default()
	cfg.DPI = 300
	cfg.Energy = "sobel"

	fs := newFlags(t, "-cols", "12", "-height", "200", "-overlay", "-order", "interleave")
	require.NoError(t, applyFlags(fs, cfg))

	assert.Equal(t, 12, cfg.RemoveColumns)
	assert.Equal(t, 200, cfg.TargetHeight)
	assert.True(t, cfg.Overlay)
	assert.Equal(t, config.OrderInterleave, cfg.Order)
	assert.Equal(t, 300, cfg.DPI, "unset flag keeps the config value")
	assert.Equal(t, "sobel", cfg.Energy)
}

func TestEnergyFlagListsVariants(t *testing.T) {
	usage := newFlags(t).Lookup("energy").Usage
	for _, v := range energy.Variants() {
		assert.Contains(t, usage, v)
	}
}

func TestLoadPlanFromInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 5, 4))))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.InputPath = path
	cfg.RemoveColumns = 2

	p, err := loadPlan(cfg)
	require.NoError(t, err)
	require.Len(t, p.Jobs, 1)
	assert.Equal(t, path, p.Jobs[0].Input)
	assert.Equal(t, 2, p.Jobs[0].RemoveColumns)

	planPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, plan.WritePlan(p, planPath))

	cfg = config.Default()
	cfg.PlanInput = planPath
	got, err := loadPlan(cfg)
	require.NoError(t, err)
	assert.Equal(t, p.Jobs, got.Jobs)
}
