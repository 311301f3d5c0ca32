package detector_test

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/conda-project/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	for _, value := range []string{"true", "1"} {
		t.Run("CI="+value, func(t *testing.T) {
			t.Setenv("CI", value)
			assert.Equal(t, detector.ColorNever, detector.DetectEnvironment())
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.ColorMode
		flag     string
		expected detector.ColorMode
	}{
		{"auto keeps detection", detector.ColorAlways, "auto", detector.ColorAlways},
		{"empty keeps detection", detector.ColorNever, "", detector.ColorNever},
		{"always overrides", detector.ColorNever, "always", detector.ColorAlways},
		{"never overrides", detector.ColorAlways, "never", detector.ColorNever},
		{"unknown keeps detection", detector.ColorAlways, "sometimes", detector.ColorAlways},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.detected, tt.flag))
		})
	}
}

func TestColorMode_Profile(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.Ascii, detector.ColorNever.Profile())

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, detector.ColorAlways.Profile())
}
