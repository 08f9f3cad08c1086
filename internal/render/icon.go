package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/luforestal/school-inventory/internal/domain"
)

// iconSVG renders a genus marker as an inline-SVG regular polygon. Leaflet
// has no regular-polygon marker, so the vertex geometry is computed here and
// dropped into an L.divIcon; doing the trigonometry in Go keeps the output
// deterministic and testable.
func iconSVG(style domain.MarkerStyle, radiusPx int) string {
	size := iconSizePx(radiusPx)
	center := float64(size) / 2
	radius := float64(radiusPx)
	rotation := float64(style.RotationDeg) * math.Pi / 180

	points := make([]string, 0, style.Sides)
	for i := 0; i < style.Sides; i++ {
		// Start with a vertex pointing up, then apply the style rotation.
		angle := -math.Pi/2 + rotation + 2*math.Pi*float64(i)/float64(style.Sides)
		x := center + radius*math.Cos(angle)
		y := center + radius*math.Sin(angle)
		points = append(points, fmt.Sprintf("%.2f,%.2f", x, y))
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d"><polygon points="%s" fill="%s" fill-opacity="0.9" stroke="%s" stroke-width="1"/></svg>`,
		size, size, size, size, strings.Join(points, " "), style.Color, style.Color)
}

// iconSizePx leaves a one-pixel margin on each side for the stroke.
func iconSizePx(radiusPx int) int {
	return radiusPx*2 + 2
}
