package archive

import (
	"archive/zip"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luforestal/school-inventory/internal/domain"
)

// writePackage lays out a minimal survey package on disk.
func writePackage(t *testing.T, withShapefile bool) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "Oakwood Elementary Tree Data.xlsx"), []byte("xlsx"), 0o644))
	if withShapefile {
		require.NoError(t, os.Mkdir(filepath.Join(root, "Boundaries"), 0o755))
		for _, ext := range []string{".shp", ".shx", ".dbf"} {
			require.NoError(t, os.WriteFile(filepath.Join(root, "Boundaries", "Boundaries"+ext), []byte("shp"), 0o644))
		}
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "Photos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Photos", "T1_front.jpg"), []byte("jpg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logo.png"), []byte("png"), 0o644))

	return root
}

// zipDir packs a directory into a zip file and returns the zip path.
func zipDir(t *testing.T, dir string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "package.zip")

	out, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(out)

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	return zipPath
}

func TestDiscover(t *testing.T) {
	t.Run("complete package", func(t *testing.T) {
		root := writePackage(t, true)

		in, err := Discover(root)
		require.NoError(t, err)
		assert.Equal(t, "Oakwood Elementary", in.SchoolName)
		assert.Equal(t, filepath.Join(root, "Oakwood Elementary Tree Data.xlsx"), in.Spreadsheet)
		assert.Equal(t, filepath.Join(root, "Boundaries", "Boundaries.shp"), in.Shapefile)
		assert.Equal(t, filepath.Join(root, "Photos"), in.PhotoDir)
		assert.Equal(t, filepath.Join(root, "logo.png"), in.Logo)
	})

	t.Run("missing spreadsheet", func(t *testing.T) {
		root := writePackage(t, true)
		require.NoError(t, os.Remove(filepath.Join(root, "Oakwood Elementary Tree Data.xlsx")))

		_, err := Discover(root)
		require.ErrorIs(t, err, domain.ErrMissingInput)
		assert.Contains(t, err.Error(), "spreadsheet")
	})

	t.Run("missing shapefile", func(t *testing.T) {
		root := writePackage(t, false)

		_, err := Discover(root)
		require.ErrorIs(t, err, domain.ErrMissingInput)
		assert.Contains(t, err.Error(), "shapefile")
	})

	t.Run("photos and logo optional", func(t *testing.T) {
		root := writePackage(t, true)
		require.NoError(t, os.RemoveAll(filepath.Join(root, "Photos")))
		require.NoError(t, os.Remove(filepath.Join(root, "logo.png")))

		in, err := Discover(root)
		require.NoError(t, err)
		assert.Empty(t, in.PhotoDir)
		assert.Empty(t, in.Logo)
	})
}

func TestLoader_Load(t *testing.T) {
	logger := slog.Default()

	t.Run("directory package", func(t *testing.T) {
		root := writePackage(t, true)

		in, err := NewLoader(nil, logger).Load(context.Background(), root, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "Oakwood Elementary", in.SchoolName)
	})

	t.Run("zip package", func(t *testing.T) {
		zipPath := zipDir(t, writePackage(t, true))
		workDir := t.TempDir()

		in, err := NewLoader(nil, logger).Load(context.Background(), zipPath, workDir)
		require.NoError(t, err)
		assert.Equal(t, "Oakwood Elementary", in.SchoolName)
		assert.FileExists(t, in.Spreadsheet)
		assert.FileExists(t, in.Shapefile)
	})

	t.Run("nonexistent package", func(t *testing.T) {
		_, err := NewLoader(nil, logger).Load(context.Background(), "/no/such/package", t.TempDir())
		require.ErrorIs(t, err, domain.ErrMissingInput)
	})

	t.Run("s3 URI without object storage", func(t *testing.T) {
		_, err := NewLoader(nil, logger).Load(context.Background(), "s3://bucket/pkg.zip", t.TempDir())
		require.ErrorIs(t, err, domain.ErrMissingInput)
		assert.Contains(t, err.Error(), "MINIO_ENDPOINT")
	})
}

func TestExtract_RejectsZipSlip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "evil.zip")
	out, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	w, err := zw.Create("../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	err = Extract(zipPath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
}
