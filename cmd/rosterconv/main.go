// Command rosterconv converts a plain-text roster or an export into a normalised
// export, optionally reporting the card bounds and recenter pan for a viewport.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"affinity-map/internal/app"
	"affinity-map/internal/viewport"
	"affinity-map/pkg/geometry"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "rosterconv: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rosterconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("i", "", "Input file: names, one per line, or an export JSON")
	out := fs.String("o", "", "Output file (default stdout)")
	width := fs.Float64("w", 0, "Viewport width for the recenter report")
	height := fs.Float64("h", 0, "Viewport height for the recenter report")
	zoom := fs.Float64("zoom", 1, "Zoom for the recenter report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return fmt.Errorf("missing -i")
	}

	state := app.NewState(nil, viewport.DefaultSettings(), 0)
	if err := state.ImportFile(*in); err != nil {
		return err
	}

	data, err := state.ExportJSON()
	if err != nil {
		return err
	}
	if *out == "" {
		if _, err := stdout.Write(append(data, '\n')); err != nil {
			return err
		}
	} else if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if *width <= 0 || *height <= 0 {
		return nil
	}
	b := viewport.ComputeBounds(state.Cards())
	if b == nil {
		fmt.Fprintln(stderr, "no cards")
		return nil
	}
	size := geometry.NewSize(*width, *height)
	state.SetViewportSize(size)
	state.SetZoom(*zoom)
	state.Recenter(size)
	vp := state.Viewport()
	fmt.Fprintf(stderr, "bounds: (%.1f, %.1f)-(%.1f, %.1f) %.0fx%.0f\n", b.MinX, b.MinY, b.MaxX, b.MaxY, b.Width(), b.Height())
	fmt.Fprintf(stderr, "recenter: zoom %.2f pan (%.1f, %.1f)\n", vp.Zoom, vp.Pan.X, vp.Pan.Y)
	return nil
}
