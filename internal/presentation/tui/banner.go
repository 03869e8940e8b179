package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"   __       _ _",
	"  / _| ___ | (_)_   _ _ __ ___",
	" | |_ / _ \\| | | | | | '_ ` _ \\",
	" |  _| (_) | | | |_| | | | | | |",
	" |_|  \\___/|_|_|\\__,_|_| |_| |_|",
}

// Greens, light to dark.
var bannerColors = []string{"#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a"}

// PrintBanner writes the folium banner to w, colored when the terminal allows.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
