package chart

import (
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	W1 = vg.Length(1)
)

var (
	Red   = Color("ff3300")
	Green = Color("339933")
	Blue  = Color("1f77b4")
	Grid  = Color("e8e8e8")
)

// Color parses a "rrggbb" or "rrggbbaa" hex string, with or without '#'.
func Color(hash string) color.Color {
	hash = strings.TrimPrefix(hash, "#")
	if len(hash) != 6 && len(hash) != 8 {
		return color.Black
	}
	c := color.RGBA{A: 255}
	cs := []*uint8{&c.R, &c.G, &c.B, &c.A}
	for i := 0; i < len(hash); i += 2 {
		ui, err := strconv.ParseUint(hash[i:i+2], 16, 8)
		if err != nil {
			return color.Black
		}
		*cs[i/2] = uint8(ui)
	}
	return c
}

func newGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = Grid
	g.Horizontal.Color = Grid
	return g
}
