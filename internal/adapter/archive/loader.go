// Package archive unpacks survey packages and locates their inputs.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/luforestal/school-inventory/internal/domain"
)

// Fetcher downloads a remote package to a local file. Implemented by the
// object-store adapter; nil when only local inputs are supported.
type Fetcher interface {
	Fetch(ctx context.Context, uri, destDir string) (string, error)
}

// IsRemote reports whether a package location refers to object storage.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// Loader resolves a package location (directory, zip, or s3 URI) into a
// discovered set of inputs under a working directory.
type Loader struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewLoader creates a Loader. Pass a nil fetcher to disable s3:// inputs.
func NewLoader(fetcher Fetcher, logger *slog.Logger) *Loader {
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load materializes the package at location into workDir if needed and
// locates the spreadsheet, shapefile set, photo directory, and logo.
func (l *Loader) Load(ctx context.Context, location, workDir string) (domain.InputSet, error) {
	if IsRemote(location) {
		if l.fetcher == nil {
			return domain.InputSet{}, fmt.Errorf("%w: %s given but object storage is not configured (set MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY)", domain.ErrMissingInput, location)
		}
		local, err := l.fetcher.Fetch(ctx, location, workDir)
		if err != nil {
			return domain.InputSet{}, err
		}
		location = local
	}

	info, err := os.Stat(location)
	if err != nil {
		return domain.InputSet{}, fmt.Errorf("%w: package %s: %v", domain.ErrMissingInput, location, err)
	}

	root := location
	if !info.IsDir() {
		root = filepath.Join(workDir, "package")
		if err := Extract(location, root); err != nil {
			return domain.InputSet{}, err
		}
		l.logger.Debug("package extracted", "zip", location, "dir", root)
	}

	return Discover(root)
}

// Extract unpacks a zip archive into destDir, rejecting entries that would
// escape it.
func Extract(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("%w: open package %s: %v", domain.ErrMissingInput, zipPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractFile(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: archive entry %q escapes extraction dir", domain.ErrMissingInput, f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// Discover locates the inputs inside an unpacked package directory. The
// spreadsheet and shapefile are required; the photo directory and logo are
// optional.
func Discover(root string) (domain.InputSet, error) {
	in := domain.InputSet{}

	var err error
	in.Spreadsheet, err = findOne(root, func(path string, d fs.DirEntry) bool {
		return !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xlsx") &&
			!strings.HasPrefix(filepath.Base(path), "~$") // Excel lock files
	})
	if err != nil {
		return in, fmt.Errorf("%w: no inventory spreadsheet (.xlsx) in package", domain.ErrMissingInput)
	}
	in.SchoolName = schoolName(in.Spreadsheet)

	in.Shapefile, err = findOne(root, func(path string, d fs.DirEntry) bool {
		return !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".shp")
	})
	if err != nil {
		return in, fmt.Errorf("%w: no boundary shapefile (.shp) in package", domain.ErrMissingInput)
	}

	if dir, err := findOne(root, func(path string, d fs.DirEntry) bool {
		return d.IsDir() && strings.EqualFold(filepath.Base(path), "photos")
	}); err == nil {
		in.PhotoDir = dir
	}

	if logo, err := findOne(root, func(path string, d fs.DirEntry) bool {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return !d.IsDir() && strings.EqualFold(stem, "logo") && domain.PhotoMIME(path) != ""
	}); err == nil {
		in.Logo = logo
	}

	return in, nil
}

var errNotFound = fmt.Errorf("not found")

// findOne walks root and returns the first entry (in lexical walk order, so
// deterministic) matching the predicate.
func findOne(root string, match func(path string, d fs.DirEntry) bool) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && match(path, d) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", errNotFound
	}
	return found, nil
}

// schoolName derives the school name from the spreadsheet file stem,
// stripping the conventional "Tree Data" suffix.
func schoolName(spreadsheet string) string {
	stem := strings.TrimSuffix(filepath.Base(spreadsheet), filepath.Ext(spreadsheet))
	stem = strings.ReplaceAll(stem, "Tree Data", "")
	stem = strings.ReplaceAll(stem, "tree data", "")
	return strings.TrimSpace(stem)
}
