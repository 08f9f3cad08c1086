package domain

import "time"

// Scene is everything the renderer composes into a map document: the
// already-loaded survey data plus presentation inputs. Purely in-memory;
// composition does no I/O.
type Scene struct {
	Title    string
	Records  []TreeRecord
	Boundary BoundaryPolygon
	Photos   map[string][]PhotoAsset

	// LogoDataURI is the embedded school logo, empty when the package has none.
	LogoDataURI string

	// PhotosAvailable distinguishes "package had no photo directory" from
	// "this tree has no photo": only in the latter case does the popup say so.
	PhotosAvailable bool
}

// Marker is one tree placed on the map.
type Marker struct {
	Code          string
	Genus         string
	Species       string
	Geo           Geo
	Style         MarkerStyle
	CanopyRadiusM float64 // 0 suppresses the canopy circle
	PopupHTML     string
}

// MapDocument is the composed map, ready for export. Produced once by the
// renderer, written once by the exporter, then discarded.
type MapDocument struct {
	Title       string
	Center      Geo
	Zoom        int
	Boundary    BoundaryPolygon
	Markers     []Marker
	LogoDataURI string
	GeneratedAt time.Time
}
