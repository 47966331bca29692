package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2025-12-04", expected: 0},
		{name: "next day after epoch", date: "2025-12-05", expected: 1},
		{name: "one year later", date: "2026-12-04", expected: 365},
		{name: "date with leap years included", date: "2032-12-04", expected: 2557},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-03", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateBuildID(tt.date)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInfo_UsesLinkerValues(t *testing.T) {
	oldDate, oldCommit := BuildDate, BuildCommit
	defer func() { BuildDate, BuildCommit = oldDate, oldCommit }()

	BuildDate, BuildCommit = "2025-12-14", "abc123"
	info := Info()

	assert.Equal(t, 10, info.BuildID)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, Protocol, info.Protocol)
	assert.Empty(t, info.Error)
	assert.Contains(t, String(), "Build 10")

	BuildDate = ""
	assert.NotEmpty(t, Info().Error)
	assert.Contains(t, String(), "Build dev")
}

func TestVCSRevision(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
	}
	assert.Equal(t, "0123456789ab", vcsRevision(settings))
	assert.Empty(t, vcsRevision(nil))
}
