// Package photos links photo files to tree records by Tree Code.
package photos

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/luforestal/school-inventory/internal/domain"
	"github.com/luforestal/school-inventory/internal/observability"
)

// Linker associates photo files with tree records and embeds their content
// as data URIs, so the rendering step never reads the filesystem.
type Linker struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLinker creates a Linker with the given observability.
func NewLinker(logger *slog.Logger, metrics *observability.Metrics) *Linker {
	return &Linker{logger: logger, metrics: metrics}
}

// Link scans dir and returns a Tree Code → photo list mapping. A photo
// belongs to every tree whose code appears in its file stem; photos that
// match no tree are counted and dropped, never an error. An empty dir
// means the package had no photo directory and yields an empty mapping.
func (l *Linker) Link(dir string, records []domain.TreeRecord) (map[string][]domain.PhotoAsset, error) {
	linked := make(map[string][]domain.PhotoAsset)
	if dir == "" {
		return linked, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read photo directory %s: %w", dir, err)
	}

	// ReadDir sorts by name, so per-tree photo lists are deterministic.
	for _, entry := range entries {
		if entry.IsDir() || domain.PhotoMIME(entry.Name()) == "" {
			continue
		}

		matched := false
		for _, rec := range records {
			if !domain.MatchPhoto(rec.Code, entry.Name()) {
				continue
			}

			asset, err := l.embed(filepath.Join(dir, entry.Name()), rec.Code)
			if err != nil {
				l.logger.Warn("unreadable photo, skipping", "file", entry.Name(), "error", err)
				break
			}
			linked[rec.Code] = append(linked[rec.Code], asset)
			matched = true
		}

		if matched {
			l.metrics.PhotosMatched.Inc()
		} else {
			l.logger.Debug("photo matches no tree code", "file", entry.Name())
			l.metrics.PhotosUnmatched.Inc()
		}
	}

	for code := range linked {
		sort.Slice(linked[code], func(i, j int) bool { return linked[code][i].Path < linked[code][j].Path })
	}

	l.logger.Info("photos linked", "trees_with_photos", len(linked))
	return linked, nil
}

// EmbedFile base64-encodes a single image file into a data URI. Used for
// the optional school logo, which is embedded the same way tree photos are.
func (l *Linker) EmbedFile(path string) (string, error) {
	if domain.PhotoMIME(path) == "" {
		return "", fmt.Errorf("unsupported image format: %s", path)
	}
	asset, err := l.embed(path, "")
	if err != nil {
		return "", err
	}
	return asset.DataURI, nil
}

// embed reads a photo and base64-encodes it into a data URI.
func (l *Linker) embed(path, code string) (domain.PhotoAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.PhotoAsset{}, err
	}
	return domain.PhotoAsset{
		Path: path,
		Code: code,
		DataURI: fmt.Sprintf("data:%s;base64,%s",
			domain.PhotoMIME(path), base64.StdEncoding.EncodeToString(data)),
	}, nil
}
