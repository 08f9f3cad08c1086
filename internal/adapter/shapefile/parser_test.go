package shapefile

import (
	"log/slog"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luforestal/school-inventory/internal/domain"
)

// campusRing is a small square around a plausible school site.
var campusRing = [][]shp.Point{{
	{X: -118.25, Y: 34.05},
	{X: -118.24, Y: 34.05},
	{X: -118.24, Y: 34.06},
	{X: -118.25, Y: 34.06},
	{X: -118.25, Y: 34.05},
}}

// writePolygonShapefile builds a real .shp fixture with one polygon.
func writePolygonShapefile(t *testing.T, rings [][]shp.Point) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Boundaries.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	line := shp.NewPolyLine(rings)
	poly := shp.Polygon(*line)
	w.Write(&poly)
	w.Close()

	return path
}

func writePointShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Points.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	w.Write(&shp.Point{X: -118.25, Y: 34.05})
	w.Close()

	return path
}

func TestParse(t *testing.T) {
	logger := slog.Default()

	t.Run("polygon boundary", func(t *testing.T) {
		path := writePolygonShapefile(t, campusRing)

		b, err := NewParser(logger).Parse(path)
		require.NoError(t, err)
		require.Len(t, b.Rings, 1)
		require.Len(t, b.Rings[0], 5)
		assert.Equal(t, domain.Geo{Lat: 34.05, Lon: -118.25}, b.Rings[0][0])
		assert.False(t, b.IsZero())
	})

	t.Run("no polygon geometry", func(t *testing.T) {
		path := writePointShapefile(t)

		_, err := NewParser(logger).Parse(path)
		require.ErrorIs(t, err, domain.ErrInvalidBoundary)
		assert.Contains(t, err.Error(), "no polygon")
	})

	t.Run("projected coordinates rejected", func(t *testing.T) {
		// EPSG:3310-style meter coordinates, far outside lat/lon range.
		path := writePolygonShapefile(t, [][]shp.Point{{
			{X: 150000, Y: -440000},
			{X: 151000, Y: -440000},
			{X: 151000, Y: -439000},
			{X: 150000, Y: -440000},
		}})

		_, err := NewParser(logger).Parse(path)
		require.ErrorIs(t, err, domain.ErrInvalidBoundary)
		assert.Contains(t, err.Error(), "WGS-84")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser(logger).Parse("/no/such/Boundaries.shp")
		require.ErrorIs(t, err, domain.ErrInvalidBoundary)
	})
}
