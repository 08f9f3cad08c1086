package domain

import "sort"

// MarkerStyle describes how one genus renders: a regular polygon with the
// given number of sides, rotated by RotationDeg, in the given color.
type MarkerStyle struct {
	Sides       int
	RotationDeg int
	Color       string
}

// shapeSpecs and markerColors are the fixed style tables cycled over the
// sorted genus list. Their lengths are coprime-ish enough that the shape and
// color sequences drift apart, so campuses with more genera than colors still
// get distinguishable shape/color combinations.
var shapeSpecs = []MarkerStyle{
	{Sides: 3, RotationDeg: 0},
	{Sides: 4, RotationDeg: 45},
	{Sides: 5, RotationDeg: 0},
	{Sides: 6, RotationDeg: 0},
	{Sides: 8, RotationDeg: 0},
	{Sides: 3, RotationDeg: 180},
	{Sides: 4, RotationDeg: 0},
}

var markerColors = []string{
	"red", "blue", "green", "purple", "orange",
	"darkred", "darkblue", "darkgreen",
	"cadetblue", "pink", "black", "gray",
}

// DefaultStyle renders trees whose genus is missing from the style map:
// an upright gray square.
var DefaultStyle = MarkerStyle{Sides: 4, RotationDeg: 0, Color: "gray"}

// AssignStyles maps each distinct genus to a MarkerStyle. Genera are
// deduplicated and sorted before the style tables are cycled, so the
// assignment depends only on the set of genera present: the same inventory
// always styles the same genus identically, run after run.
func AssignStyles(genera []string) map[string]MarkerStyle {
	distinct := make(map[string]struct{}, len(genera))
	for _, g := range genera {
		if g != "" {
			distinct[g] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(distinct))
	for g := range distinct {
		sorted = append(sorted, g)
	}
	sort.Strings(sorted)

	styles := make(map[string]MarkerStyle, len(sorted))
	for i, g := range sorted {
		style := shapeSpecs[i%len(shapeSpecs)]
		style.Color = markerColors[i%len(markerColors)]
		styles[g] = style
	}
	return styles
}
