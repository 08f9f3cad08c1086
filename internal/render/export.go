package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/luforestal/school-inventory/internal/domain"
)

//go:embed map.tmpl
var templates embed.FS

var mapTemplate = template.Must(template.ParseFS(templates, "map.tmpl"))

// Exporter writes a composed MapDocument as a standalone Leaflet HTML page.
type Exporter struct {
	markerRadiusPx  int
	popupMaxWidthPx int
	logger          *slog.Logger
}

// NewExporter creates an Exporter with the given marker and popup sizing.
func NewExporter(markerRadiusPx, popupMaxWidthPx int, logger *slog.Logger) *Exporter {
	return &Exporter{
		markerRadiusPx:  markerRadiusPx,
		popupMaxWidthPx: popupMaxWidthPx,
		logger:          logger,
	}
}

// markerJSON is the wire form of a marker inside the page's script block.
type markerJSON struct {
	Code   string  `json:"code"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	SVG    string  `json:"svg"`
	Canopy float64 `json:"canopy"` // meters; 0 means no circle
	Popup  string  `json:"popup"`
}

// pageData feeds map.tmpl.
type pageData struct {
	Title           string
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	MarkersJSON     template.JS
	BoundaryGeoJSON template.JS // "null" when the document has no boundary
	IconSizePx      int
	PopupMaxWidthPx int
	LogoDataURI     template.URL
	GeneratedAt     string
}

// Export writes the document to path as a self-contained HTML map viewable
// offline. All run-specific assets (photos, logo, boundary, markers) are
// embedded in the page; only the Leaflet library itself is CDN-referenced.
func (e *Exporter) Export(doc domain.MapDocument, path string) error {
	data, err := e.pageData(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWrite, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrWrite, path, err)
	}

	if err := mapTemplate.Execute(out, data); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("%w: render %s: %v", domain.ErrWrite, path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrWrite, path, err)
	}

	e.logger.Info("map exported", "path", path, "markers", len(doc.Markers))
	return nil
}

func (e *Exporter) pageData(doc domain.MapDocument) (pageData, error) {
	markers := make([]markerJSON, 0, len(doc.Markers))
	for _, m := range doc.Markers {
		markers = append(markers, markerJSON{
			Code:   m.Code,
			Lat:    m.Geo.Lat,
			Lon:    m.Geo.Lon,
			SVG:    iconSVG(m.Style, e.markerRadiusPx),
			Canopy: m.CanopyRadiusM,
			Popup:  m.PopupHTML,
		})
	}

	markersJSON, err := json.Marshal(markers)
	if err != nil {
		return pageData{}, err
	}

	boundaryJSON, err := boundaryGeoJSON(doc.Boundary)
	if err != nil {
		return pageData{}, err
	}

	return pageData{
		Title:           doc.Title,
		CenterLat:       doc.Center.Lat,
		CenterLon:       doc.Center.Lon,
		Zoom:            doc.Zoom,
		MarkersJSON:     template.JS(markersJSON),
		BoundaryGeoJSON: template.JS(boundaryJSON),
		IconSizePx:      iconSizePx(e.markerRadiusPx),
		PopupMaxWidthPx: e.popupMaxWidthPx,
		LogoDataURI:     template.URL(doc.LogoDataURI),
		GeneratedAt:     doc.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
	}, nil
}

// boundaryGeoJSON serializes the boundary as a GeoJSON Feature, or "null"
// when there is none.
func boundaryGeoJSON(b domain.BoundaryPolygon) ([]byte, error) {
	if b.IsZero() {
		return []byte("null"), nil
	}

	poly := make(orb.Polygon, 0, len(b.Rings))
	for _, ring := range b.Rings {
		r := make(orb.Ring, 0, len(ring))
		for _, v := range ring {
			r = append(r, orb.Point{v.Lon, v.Lat})
		}
		poly = append(poly, r)
	}

	feature := geojson.NewFeature(poly)
	feature.Properties["name"] = "School boundary"
	return feature.MarshalJSON()
}
