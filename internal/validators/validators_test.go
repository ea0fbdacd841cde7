package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"ana@gym.com":        true,
		"first.last@a.co.uk": true,
		"":                   false,
		"ana":                false,
		"ana@":               false,
		"@gym.com":           false,
		"ana gym@gym.com":    false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsEmail(in), in)
	}
}

func TestIsImageURL(t *testing.T) {
	tests := map[string]bool{
		"https://cdn.gym.com/logo.webp": true,
		"http://localhost:9000/b/x.png": true,
		"":                              false,
		"logo.png":                      false,
		"ftp://gym.com/logo.png":        false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsImageURL(in), in)
	}
}
