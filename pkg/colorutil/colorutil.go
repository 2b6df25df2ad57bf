// Package colorutil provides shared color utilities for the affinity map.
package colorutil

import (
	"hash/fnv"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// Board palette.
var (
	Background      = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 255}
	GridLine        = color.RGBA{R: 255, G: 255, B: 255, A: 13}
	MinisterFill    = colornames.Royalblue
	MinisterStroke  = colornames.Lightskyblue
	RecipientFill   = colornames.Seagreen
	RecipientStroke = colornames.Lightgreen
	CardText        = colornames.White
	CardSubtext     = colornames.Lightgray
)

// tag chips share saturation and value so only the hue tells them apart.
const (
	tagSaturation = 0.55
	tagValue      = 0.45
)

// TagColor returns a stable color for a tag name.
// The same tag always maps to the same hue across runs.
func TagColor(tag string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	hue := float64(h.Sum32() % 360)
	r, g, b := HSVToRGB(hue, tagSaturation, tagValue)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// HSVToRGB converts HSV (H 0-360, S 0-1, V 0-1) to 8-bit RGB.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	return to8(rf + m), to8(gf + m), to8(bf + m)
}

func to8(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}
