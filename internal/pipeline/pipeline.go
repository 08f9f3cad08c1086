// Package pipeline sequences a map build from package to HTML artifact.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/luforestal/school-inventory/internal/domain"
	"github.com/luforestal/school-inventory/internal/observability"
)

// Loader materializes a package location and locates its inputs.
type Loader interface {
	Load(ctx context.Context, location, workDir string) (domain.InputSet, error)
}

// InventoryParser reads tree records from the spreadsheet.
type InventoryParser interface {
	Parse(path string) ([]domain.TreeRecord, error)
}

// BoundaryParser reads the campus polygon from the shapefile.
type BoundaryParser interface {
	Parse(path string) (domain.BoundaryPolygon, error)
}

// PhotoLinker maps Tree Codes to embedded photo assets.
type PhotoLinker interface {
	Link(dir string, records []domain.TreeRecord) (map[string][]domain.PhotoAsset, error)
}

// Embedder turns a local image file into a data URI (used for the logo).
type Embedder interface {
	EmbedFile(path string) (string, error)
}

// Renderer composes the loaded data into a map document.
type Renderer interface {
	Compose(scene domain.Scene) (domain.MapDocument, error)
}

// Exporter writes the composed document to the output path.
type Exporter interface {
	Export(doc domain.MapDocument, path string) error
}

// Pipeline runs the build stages in order: load, parse inventory, parse
// boundary, link photos, render, export. Each stage's success is a
// precondition for the next; any failure halts the run.
type Pipeline struct {
	loader    Loader
	inventory InventoryParser
	boundary  BoundaryParser
	photos    PhotoLinker
	embedder  Embedder
	renderer  Renderer
	exporter  Exporter

	workRoot string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability. workRoot
// is where per-run extraction directories are created; empty means the
// system temp dir.
func New(loader Loader, inventory InventoryParser, boundary BoundaryParser, photos PhotoLinker,
	embedder Embedder, renderer Renderer, exporter Exporter,
	workRoot string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:    loader,
		inventory: inventory,
		boundary:  boundary,
		photos:    photos,
		embedder:  embedder,
		renderer:  renderer,
		exporter:  exporter,
		workRoot:  workRoot,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run builds the map for one input package and writes it to outputPath.
// The per-run work directory is removed on success and failure alike.
func (p *Pipeline) Run(ctx context.Context, location, outputPath string) error {
	start := time.Now()

	workDir, err := os.MkdirTemp(p.workRoot, "treemap-*")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			p.logger.Warn("work directory cleanup failed", "dir", workDir, "error", err)
		}
	}()

	var inputs domain.InputSet
	if err := p.stage(ctx, "load", func() (err error) {
		inputs, err = p.loader.Load(ctx, location, workDir)
		return err
	}); err != nil {
		return err
	}
	p.logger.Info("inputs located", "school", inputs.SchoolName, "photos", inputs.PhotoDir != "", "logo", inputs.Logo != "")

	var records []domain.TreeRecord
	if err := p.stage(ctx, "inventory", func() (err error) {
		records, err = p.inventory.Parse(inputs.Spreadsheet)
		return err
	}); err != nil {
		return err
	}

	var boundary domain.BoundaryPolygon
	if err := p.stage(ctx, "boundary", func() (err error) {
		boundary, err = p.boundary.Parse(inputs.Shapefile)
		return err
	}); err != nil {
		return err
	}

	var photos map[string][]domain.PhotoAsset
	if err := p.stage(ctx, "photos", func() (err error) {
		photos, err = p.photos.Link(inputs.PhotoDir, records)
		return err
	}); err != nil {
		return err
	}

	logoURI := ""
	if inputs.Logo != "" {
		uri, err := p.embedder.EmbedFile(inputs.Logo)
		if err != nil {
			p.logger.Warn("logo unreadable, omitting", "path", inputs.Logo, "error", err)
		} else {
			logoURI = uri
		}
	}

	var doc domain.MapDocument
	if err := p.stage(ctx, "render", func() (err error) {
		doc, err = p.renderer.Compose(domain.Scene{
			Title:           inputs.SchoolName,
			Records:         records,
			Boundary:        boundary,
			Photos:          photos,
			LogoDataURI:     logoURI,
			PhotosAvailable: inputs.PhotoDir != "",
		})
		return err
	}); err != nil {
		return err
	}

	if err := p.stage(ctx, "export", func() error {
		return p.exporter.Export(doc, outputPath)
	}); err != nil {
		return err
	}

	p.logger.Info("map build complete",
		"school", inputs.SchoolName,
		"markers", len(doc.Markers),
		"output", outputPath,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// stage runs one pipeline stage, timing it and honoring cancellation
// between stages.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := fn()
	p.metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		p.logger.Error("stage failed", "stage", name, "error", err)
		return err
	}
	p.logger.Debug("stage complete", "stage", name, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
