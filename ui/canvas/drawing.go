package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f64"

	"affinity-map/pkg/colorutil"
)

// GridSpacing is the distance between grid lines in world units.
const GridSpacing = 50.0

// minGridStep keeps zoomed-out grids from turning into a solid fill.
const minGridStep = 8.0

// gridLines returns the screen coordinates of the vertical (xs) and horizontal
// (ys) grid lines visible in a w×h area under the world-to-screen transform m.
// scale converts widget units to raster pixels.
func gridLines(m f64.Aff3, w, h int, scale float64) (xs, ys []int) {
	step := GridSpacing * m[0] * scale
	if step <= 0 || math.IsNaN(step) {
		return nil, nil
	}
	for step < minGridStep {
		step *= 2
	}
	return axisLines(m[2]*scale, step, w), axisLines(m[5]*scale, step, h)
}

func axisLines(origin, step float64, limit int) []int {
	first := math.Mod(origin, step)
	if first < 0 {
		first += step
	}
	var out []int
	for v := first; v < float64(limit); v += step {
		out = append(out, int(math.Round(v)))
	}
	return out
}

// drawGrid renders the background and grid into a new image.
func drawGrid(m f64.Aff3, w, h int, scale float64) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(output, colorutil.Background)

	xs, ys := gridLines(m, w, h, scale)
	for _, x := range xs {
		for y := 0; y < h; y++ {
			blend(output, x, y, colorutil.GridLine)
		}
	}
	for _, y := range ys {
		for x := 0; x < w; x++ {
			blend(output, x, y, colorutil.GridLine)
		}
	}
	return output
}

func fill(output *image.RGBA, col color.RGBA) {
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = col.R
		output.Pix[i+1] = col.G
		output.Pix[i+2] = col.B
		output.Pix[i+3] = 255
	}
}

// blend draws col over the pixel at (x, y) using col's alpha.
func blend(output *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(output.Bounds())) {
		return
	}
	i := output.PixOffset(x, y)
	a := float64(col.A) / 255
	mix := func(dst, src uint8) uint8 {
		return uint8(math.Round(float64(dst)*(1-a) + float64(src)*a))
	}
	output.Pix[i] = mix(output.Pix[i], col.R)
	output.Pix[i+1] = mix(output.Pix[i+1], col.G)
	output.Pix[i+2] = mix(output.Pix[i+2], col.B)
}
