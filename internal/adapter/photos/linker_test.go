package photos

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luforestal/school-inventory/internal/domain"
	"github.com/luforestal/school-inventory/internal/observability"
)

func newLinker(t *testing.T) (*Linker, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	return NewLinker(slog.Default(), metrics), metrics
}

func writePhotos(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img-"+name), 0o644))
	}
	return dir
}

func trees(codes ...string) []domain.TreeRecord {
	recs := make([]domain.TreeRecord, 0, len(codes))
	for _, c := range codes {
		recs = append(recs, domain.TreeRecord{Code: c})
	}
	return recs
}

func TestLink(t *testing.T) {
	t.Run("matches by code in stem", func(t *testing.T) {
		dir := writePhotos(t, "T1_front.jpg", "t1_side.png", "T3.jpeg", "T9_old.jpg")

		l, metrics := newLinker(t)
		linked, err := l.Link(dir, trees("T1", "T2", "T3"))
		require.NoError(t, err)

		require.Len(t, linked["T1"], 2)
		require.Len(t, linked["T3"], 1)
		assert.NotContains(t, linked, "T2")
		assert.Equal(t, 3.0, testutil.ToFloat64(metrics.PhotosMatched))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PhotosUnmatched))
	})

	t.Run("embeds photo content as data URI", func(t *testing.T) {
		dir := writePhotos(t, "T1.jpg")

		l, _ := newLinker(t)
		linked, err := l.Link(dir, trees("T1"))
		require.NoError(t, err)

		require.Len(t, linked["T1"], 1)
		uri := linked["T1"][0].DataURI
		assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"), "got %q", uri)
		// "img-T1.jpg" base64-encoded.
		assert.Contains(t, uri, "aW1nLVQxLmpwZw==")
	})

	t.Run("photo list order is deterministic", func(t *testing.T) {
		dir := writePhotos(t, "T1_c.jpg", "T1_a.jpg", "T1_b.jpg")

		l, _ := newLinker(t)
		linked, err := l.Link(dir, trees("T1"))
		require.NoError(t, err)

		require.Len(t, linked["T1"], 3)
		assert.Equal(t, "T1_a.jpg", filepath.Base(linked["T1"][0].Path))
		assert.Equal(t, "T1_b.jpg", filepath.Base(linked["T1"][1].Path))
		assert.Equal(t, "T1_c.jpg", filepath.Base(linked["T1"][2].Path))
	})

	t.Run("non-photo files ignored", func(t *testing.T) {
		dir := writePhotos(t, "T1_notes.txt", "T1.gif")

		l, metrics := newLinker(t)
		linked, err := l.Link(dir, trees("T1"))
		require.NoError(t, err)
		assert.Empty(t, linked)
		assert.Zero(t, testutil.ToFloat64(metrics.PhotosUnmatched))
	})

	t.Run("no photo directory", func(t *testing.T) {
		l, _ := newLinker(t)
		linked, err := l.Link("", trees("T1"))
		require.NoError(t, err)
		assert.Empty(t, linked)
	})

	t.Run("unreadable directory", func(t *testing.T) {
		l, _ := newLinker(t)
		_, err := l.Link("/no/such/photos", trees("T1"))
		assert.Error(t, err)
	})
}
