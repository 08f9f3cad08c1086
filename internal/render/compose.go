// Package render composes tree inventories into interactive Leaflet maps.
package render

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/luforestal/school-inventory/internal/domain"
	"github.com/luforestal/school-inventory/internal/observability"
)

// Composer builds MapDocuments from loaded survey data.
type Composer struct {
	zoom    int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewComposer creates a Composer rendering at the given base zoom level.
func NewComposer(zoom int, logger *slog.Logger, metrics *observability.Metrics) *Composer {
	return &Composer{zoom: zoom, logger: logger, metrics: metrics}
}

// Compose turns a scene into a map document: one marker per tree, styled by
// genus, centered on the mean of the plotted coordinates. Pure composition
// over already-loaded data; the only outside input is the domain clock for
// the generated-at stamp.
func (c *Composer) Compose(scene domain.Scene) (domain.MapDocument, error) {
	if len(scene.Records) == 0 {
		return domain.MapDocument{}, fmt.Errorf("%w: inventory has no plottable rows", domain.ErrInvalidInventory)
	}

	genera := make([]string, 0, len(scene.Records))
	for _, rec := range scene.Records {
		genera = append(genera, rec.Genus)
	}
	styles := domain.AssignStyles(genera)

	doc := domain.MapDocument{
		Title:       scene.Title,
		Center:      meanCenter(scene.Records),
		Zoom:        c.zoom,
		Boundary:    scene.Boundary,
		LogoDataURI: scene.LogoDataURI,
		GeneratedAt: domain.Now(),
		Markers:     make([]domain.Marker, 0, len(scene.Records)),
	}

	for _, rec := range scene.Records {
		style, ok := styles[rec.Genus]
		if !ok {
			style = domain.DefaultStyle
		}

		doc.Markers = append(doc.Markers, domain.Marker{
			Code:          rec.Code,
			Genus:         rec.Genus,
			Species:       rec.Species,
			Geo:           rec.Geo,
			Style:         style,
			CanopyRadiusM: rec.CanopyRadius(),
			PopupHTML:     popupHTML(rec, scene.Photos[rec.Code], scene.PhotosAvailable),
		})
		c.metrics.MarkersRendered.Inc()
	}

	c.logger.Info("map composed",
		"title", doc.Title,
		"markers", len(doc.Markers),
		"genera", len(styles),
		"boundary_rings", len(doc.Boundary.Rings),
	)
	return doc, nil
}

// meanCenter averages the plotted coordinates, matching how the survey
// tooling has always centered its maps.
func meanCenter(records []domain.TreeRecord) domain.Geo {
	var lat, lon float64
	for _, rec := range records {
		lat += rec.Geo.Lat
		lon += rec.Geo.Lon
	}
	n := float64(len(records))
	return domain.Geo{Lat: lat / n, Lon: lon / n}
}

// popupHTML renders the popup body for one tree. All spreadsheet text is
// escaped; photo data URIs are generated locally and embedded as-is.
func popupHTML(rec domain.TreeRecord, photos []domain.PhotoAsset, photosAvailable bool) string {
	var b strings.Builder
	b.WriteString(`<div style="font-size:13px;">`)
	fmt.Fprintf(&b, "<b>Tree code:</b> %s<br>", html.EscapeString(rec.Code))
	fmt.Fprintf(&b, "<b>Genus:</b> %s<br>", html.EscapeString(rec.Genus))
	fmt.Fprintf(&b, "<b>Species:</b> %s<br>", html.EscapeString(rec.Species))
	fmt.Fprintf(&b, "<b>DBH (cm):</b> %s<br>", html.EscapeString(rec.DBHcm))
	fmt.Fprintf(&b, "<b>Height (m):</b> %s", html.EscapeString(rec.HeightM))

	switch {
	case len(photos) > 0:
		for _, photo := range photos {
			fmt.Fprintf(&b, `<br><img src="%s" alt="%s" width="200" style="border-radius:8px;margin-top:6px;">`,
				photo.DataURI, html.EscapeString(photoName(photo.Path)))
		}
	case photosAvailable && rec.Code != "":
		b.WriteString("<br><i>No photo available</i>")
	}

	b.WriteString("</div>")
	return b.String()
}

func photoName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
