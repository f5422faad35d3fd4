package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseImage(t *testing.T) {
	im := ParseImage("@https://cdn.example.com/truffle.png")
	assert.Equal(t, "https://cdn.example.com/truffle.png", im.URL)
	assert.True(t, im.IsExternal)

	im = ParseImage("/uploads/truffle.png")
	assert.Equal(t, "/uploads/truffle.png", im.URL)
	assert.False(t, im.IsExternal)

	assert.Equal(t, Image{}, ParseImage(""))
}

func TestImageRawRoundTrip(t *testing.T) {
	for _, raw := range []string{"@https://cdn.example.com/a.png", "/uploads/b.png"} {
		assert.Equal(t, raw, ParseImage(raw).Raw())
	}
	// The marker is only written for external images with a URL.
	assert.Equal(t, "", Image{IsExternal: true}.Raw())
}
