package domain

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TreeRecord is one row of the inventory spreadsheet after parsing.
// Records are created once by the inventory parser and never mutated.
type TreeRecord struct {
	Code    string // unique Tree Code, e.g. "T17"
	Genus   string
	Species string
	Geo     Geo

	// DBH and height are carried verbatim from the spreadsheet cells; they
	// only ever appear in popup text, so parsing them would lose formatting
	// like "12.5" vs "12.50" for no benefit.
	DBHcm   string
	HeightM string

	// Crown spread in meters along the two survey axes. Nil when the
	// surveyor left the cell empty.
	CrownNSm *float64
	CrownEWm *float64

	Notes string
}

// CanopyRadius derives the canopy circle radius in meters from the crown
// spread measurements: the mean of the two diameters halved when both are
// present, half the single diameter when only one is. Returns 0 when the
// tree has no crown measurements, which suppresses the circle overlay.
func (t TreeRecord) CanopyRadius() float64 {
	switch {
	case t.CrownNSm != nil && t.CrownEWm != nil:
		return (*t.CrownNSm + *t.CrownEWm) / 4
	case t.CrownNSm != nil:
		return *t.CrownNSm / 2
	case t.CrownEWm != nil:
		return *t.CrownEWm / 2
	}
	return 0
}

// BoundaryPolygon is the campus outline read from the boundary shapefile.
// The first ring is the outer boundary; any further rings are holes.
type BoundaryPolygon struct {
	Rings [][]Geo
}

// IsZero reports whether the polygon has no geometry.
func (b BoundaryPolygon) IsZero() bool {
	return len(b.Rings) == 0
}

// InputSet is the result of unpacking and locating an input package.
type InputSet struct {
	SchoolName  string
	Spreadsheet string // path to the inventory .xlsx
	Shapefile   string // path to the boundary .shp
	PhotoDir    string // empty when the package has no photo directory
	Logo        string // empty when the package has no logo image
}
