package utils

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// ColourValidate checks for an "#rrggbbaa" hex colour.
func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

// ColourParse turns "#rrggbbaa" into normalised RGBA components.
func ColourParse(s string) (mgl32.Vec4, error) {
	if !ColourValidate(s) {
		return mgl32.Vec4{}, fmt.Errorf("%s is not a valid RGBA hex colour", s)
	}
	var r, g, b, a uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("could not parse colour %s: %w", s, err)
	}
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}, nil
}

// ColourFormat is the inverse of ColourParse, rounding to the nearest byte.
func ColourFormat(c mgl32.Vec4) string {
	var out [4]uint8
	for i := range out {
		out[i] = uint8(mgl32.Clamp(c[i], 0, 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", out[0], out[1], out[2], out[3])
}
