package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestCanopyRadius(t *testing.T) {
	t.Run("both crown axes measured", func(t *testing.T) {
		rec := TreeRecord{CrownNSm: f64(8), CrownEWm: f64(6)}
		assert.InDelta(t, 3.5, rec.CanopyRadius(), 1e-9)
	})

	t.Run("only north-south measured", func(t *testing.T) {
		rec := TreeRecord{CrownNSm: f64(8)}
		assert.InDelta(t, 4.0, rec.CanopyRadius(), 1e-9)
	})

	t.Run("only east-west measured", func(t *testing.T) {
		rec := TreeRecord{CrownEWm: f64(5)}
		assert.InDelta(t, 2.5, rec.CanopyRadius(), 1e-9)
	})

	t.Run("no crown measurements", func(t *testing.T) {
		rec := TreeRecord{}
		assert.Zero(t, rec.CanopyRadius())
	})
}

func TestMatchPhoto(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		filename string
		want     bool
	}{
		{"exact stem", "T17", "T17.jpg", true},
		{"code with suffix", "T17", "T17_front.jpg", true},
		{"case-insensitive", "T17", "t17_side.JPG", true},
		{"png accepted", "T17", "T17.png", true},
		{"jpeg accepted", "T17", "photo_T17.jpeg", true},
		{"different code", "T17", "T18_front.jpg", false},
		{"non-photo extension", "T17", "T17.txt", false},
		{"extension not part of stem match", "T17", "front.jpgT17", false},
		{"empty code", "", "T17.jpg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPhoto(tt.code, tt.filename))
		})
	}
}

func TestPhotoMIME(t *testing.T) {
	assert.Equal(t, "image/jpeg", PhotoMIME("a.jpg"))
	assert.Equal(t, "image/jpeg", PhotoMIME("a.JPEG"))
	assert.Equal(t, "image/png", PhotoMIME("a.png"))
	assert.Empty(t, PhotoMIME("a.gif"))
	assert.Empty(t, PhotoMIME("a"))
}
