package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile_Valid(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())

	// Базовые пороги автомата
	assert.Equal(t, 30, p.SpawnGrace)
	assert.Equal(t, 12, p.ConfuseTime)
	assert.Equal(t, 80, p.ChaseMemory)
	assert.Equal(t, 10, p.DetectionDelay)
	assert.Equal(t, 5, p.MemoryCapacity)
	assert.Equal(t, 800, p.SearchFrontierCap)
	assert.Equal(t, NavigationDirect, p.Navigation)
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"Zero detection delay", func(p *Profile) { p.DetectionDelay = 0 }},
		{"Capture exceeds chase", func(p *Profile) { p.CaptureRadius = p.ChaseRadius + 1 }},
		{"Unknown navigation", func(p *Profile) { p.Navigation = "astar" }},
		{"Wide sight cone", func(p *Profile) { p.SightHalfAngle = 200 }},
		{"Negative grace", func(p *Profile) { p.SpawnGrace = -1 }},
		{"Zero memory", func(p *Profile) { p.MemoryCapacity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}

func TestProfile_Merge(t *testing.T) {
	base := DefaultProfile()

	merged, err := base.Merge(Overrides{
		"detection_delay": 4,
		"sight_range":     300.5,
		"navigation":      "grid",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, merged.DetectionDelay)
	assert.Equal(t, 300.5, merged.SightRange)
	assert.Equal(t, NavigationGrid, merged.Navigation)
	// Остальные поля не тронуты
	assert.Equal(t, base.ConfuseTime, merged.ConfuseTime)
	// Исходный профиль не меняется
	assert.Equal(t, 10, base.DetectionDelay)

	_, err = base.Merge(Overrides{"detecton_delay": 4})
	assert.Error(t, err, "typo in override key must be rejected")

	same, err := base.Merge(nil)
	require.NoError(t, err)
	assert.Equal(t, base, same)
}

func TestParseProfiles(t *testing.T) {
	data := []byte(`
profiles:
  easy:
    detection_delay: 20
    sight_range: 150
  hard:
    detection_delay: 5
    navigation: grid
`)

	ps, err := ParseProfiles(data)
	require.NoError(t, err)
	require.Len(t, ps, 3)

	easy, err := ps.Get("easy")
	require.NoError(t, err)
	assert.Equal(t, 20, easy.DetectionDelay)
	assert.Equal(t, 150.0, easy.SightRange)
	assert.Equal(t, DefaultProfile().ChaseMemory, easy.ChaseMemory)

	hard, err := ps.Get("hard")
	require.NoError(t, err)
	assert.Equal(t, NavigationGrid, hard.Navigation)

	def, err := ps.Get("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), def)

	_, err = ps.Get("nightmare")
	assert.Error(t, err)
}

func TestParseProfiles_Invalid(t *testing.T) {
	_, err := ParseProfiles([]byte("profiles:\n  broken:\n    confuse_time: 0\n"))
	assert.Error(t, err)

	_, err = ParseProfiles([]byte("profiles: [1, 2"))
	assert.Error(t, err)
}

func TestLoadProfiles(t *testing.T) {
	ps, err := LoadProfiles("")
	require.NoError(t, err)
	assert.Contains(t, ps, "normal")

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  easy:\n    chase_memory: 40\n"), 0o644))

	ps, err = LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, 40, ps["easy"].ChaseMemory)

	_, err = LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
