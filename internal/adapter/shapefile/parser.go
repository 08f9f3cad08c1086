// Package shapefile reads campus boundary polygons.
package shapefile

import (
	"fmt"
	"log/slog"

	shp "github.com/jonas-p/go-shp"

	"github.com/luforestal/school-inventory/internal/domain"
)

// Parser extracts the boundary polygon from a shapefile.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a Parser.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse returns the first polygon feature in the shapefile as the campus
// boundary. The file must already be in geographic (WGS-84) coordinates;
// projected shapefiles are rejected rather than silently mis-plotted.
func (p *Parser) Parse(path string) (domain.BoundaryPolygon, error) {
	r, err := shp.Open(path)
	if err != nil {
		return domain.BoundaryPolygon{}, fmt.Errorf("%w: open shapefile %s: %v", domain.ErrInvalidBoundary, path, err)
	}
	defer r.Close()

	for r.Next() {
		_, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		boundary := toBoundary(poly)
		if boundary.IsZero() {
			continue
		}
		if err := checkGeographic(boundary); err != nil {
			return domain.BoundaryPolygon{}, err
		}

		p.logger.Info("boundary parsed", "rings", len(boundary.Rings), "vertices", len(poly.Points))
		return boundary, nil
	}

	return domain.BoundaryPolygon{}, fmt.Errorf("%w: %s contains no polygon geometry", domain.ErrInvalidBoundary, path)
}

// toBoundary splits a shapefile polygon's flat point list into rings using
// the part offsets. Shapefile points are (X=lon, Y=lat).
func toBoundary(poly *shp.Polygon) domain.BoundaryPolygon {
	var b domain.BoundaryPolygon
	for i, start := range poly.Parts {
		end := int32(len(poly.Points))
		if i+1 < len(poly.Parts) {
			end = poly.Parts[i+1]
		}
		if start >= end {
			continue
		}
		ring := make([]domain.Geo, 0, end-start)
		for _, pt := range poly.Points[start:end] {
			ring = append(ring, domain.Geo{Lat: pt.Y, Lon: pt.X})
		}
		b.Rings = append(b.Rings, ring)
	}
	return b
}

// checkGeographic rejects vertices outside lat/lon range, which means the
// shapefile was exported in a projected CRS and must be re-exported in WGS-84.
func checkGeographic(b domain.BoundaryPolygon) error {
	for _, ring := range b.Rings {
		for _, v := range ring {
			if v.Lat < -90 || v.Lat > 90 || v.Lon < -180 || v.Lon > 180 {
				return fmt.Errorf("%w: vertex (%.1f, %.1f) is outside geographic range; re-export the shapefile in WGS-84 (EPSG:4326)",
					domain.ErrInvalidBoundary, v.Lat, v.Lon)
			}
		}
	}
	return nil
}
