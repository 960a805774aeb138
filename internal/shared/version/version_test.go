package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
		{" 2.0.0 ", "v2.0.0"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", Dev},
		{"dev", "dev", "dev"},
		{"short release", "1.2", "v1.2.0"},
		{"full release", "v1.4.2", "v1.4.2"},
		{"prerelease", "1.0.0-rc.1", "v1.0.0-rc.1"},
		{"build metadata", "1.0.0+abc123", "v1.0.0+abc123"},
		{"commit hash", "3f2c9e1", "3f2c9e1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.in))
		})
	}
}
