package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemver(t *testing.T) {
	v, err := parseSemver("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, semver{1, 2, 3}, v)

	_, err = parseSemver("dev")
	require.Error(t, err)

	_, err = parseSemver("1.2")
	require.Error(t, err)
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"0.1.0", "v0.1.1", true},
		{"0.1.0", "v0.1.0", false},
		{"1.0.0", "v0.9.9", false},
		{"0.9.0", "v1.0.0", true},
		{"dev", "v1.0.0", false},
		{"1.0.0", "nightly", false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, isNewer(tt.current, tt.latest), "%s vs %s", tt.current, tt.latest)
	}
}
