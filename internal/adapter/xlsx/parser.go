// Package xlsx reads tree inventory spreadsheets.
package xlsx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/luforestal/school-inventory/internal/domain"
	"github.com/luforestal/school-inventory/internal/observability"
)

// treesSheet is the conventional sheet name; the first sheet is used when
// the workbook has no sheet with this name.
const treesSheet = "Trees"

// Header aliases, all compared after normalization (lowercase, spaces and
// underscores stripped). Surveyors are not consistent about these.
var (
	codeAliases  = []string{"treecode", "code"}
	genusAliases = []string{"genus"}
	latAliases   = []string{"lat", "latitude"}
	lonAliases   = []string{"lon", "lng", "longitude"}

	speciesAliases = []string{"species"}
	dbhAliases     = []string{"dbh1cm", "dbhcm", "dbh"}
	heightAliases  = []string{"heightm", "height"}
	crownNSAliases = []string{"crownnsm", "crownns"}
	crownEWAliases = []string{"crownewm", "crownew"}
	notesAliases   = []string{"notes", "comments"}
)

// Parser reads TreeRecords from an inventory spreadsheet.
type Parser struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewParser creates a Parser with the given observability.
func NewParser(logger *slog.Logger, metrics *observability.Metrics) *Parser {
	return &Parser{logger: logger, metrics: metrics}
}

// Parse reads the inventory at path into tree records. Rows without usable
// coordinates and rows repeating an already-seen Tree Code are skipped with
// a warning; a missing required column is fatal.
func (p *Parser) Parse(path string) ([]domain.TreeRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet %s: %v", domain.ErrInvalidInventory, path, err)
	}
	defer f.Close()

	sheet := treesSheet
	if idx, err := f.GetSheetIndex(treesSheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: spreadsheet has no sheets", domain.ErrInvalidInventory)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrInvalidInventory, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", domain.ErrInvalidInventory, sheet)
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.TreeRecord, 0, len(rows)-1)
	seen := make(map[string]struct{})

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		rec, ok := p.parseRow(cols, row, rowNum)
		if !ok {
			continue
		}

		if _, dup := seen[rec.Code]; dup {
			p.logger.Warn("duplicate tree code, keeping first occurrence", "row", rowNum, "code", rec.Code)
			p.metrics.RowsSkipped.WithLabelValues("duplicate_code").Inc()
			continue
		}
		seen[rec.Code] = struct{}{}

		records = append(records, rec)
		p.metrics.RowsParsed.Inc()
	}

	p.logger.Info("inventory parsed", "sheet", sheet, "trees", len(records))
	return records, nil
}

func (p *Parser) parseRow(cols columns, row []string, rowNum int) (domain.TreeRecord, bool) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(cell(row, cols.lat)), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(cell(row, cols.lon)), 64)
	if latErr != nil || lonErr != nil {
		p.logger.Warn("row has no usable coordinates, skipping",
			"row", rowNum, "code", strings.TrimSpace(cell(row, cols.code)))
		p.metrics.RowsSkipped.WithLabelValues("missing_coordinates").Inc()
		return domain.TreeRecord{}, false
	}

	code := strings.TrimSpace(cell(row, cols.code))
	if code == "" {
		p.logger.Warn("row has no tree code, skipping", "row", rowNum)
		p.metrics.RowsSkipped.WithLabelValues("bad_row").Inc()
		return domain.TreeRecord{}, false
	}

	return domain.TreeRecord{
		Code:     code,
		Genus:    strings.TrimSpace(cell(row, cols.genus)),
		Species:  strings.TrimSpace(cell(row, cols.species)),
		Geo:      domain.Geo{Lat: lat, Lon: lon},
		DBHcm:    strings.TrimSpace(cell(row, cols.dbh)),
		HeightM:  strings.TrimSpace(cell(row, cols.height)),
		CrownNSm: parseOptionalFloat(cell(row, cols.crownNS)),
		CrownEWm: parseOptionalFloat(cell(row, cols.crownEW)),
		Notes:    strings.TrimSpace(cell(row, cols.notes)),
	}, true
}

// columns holds resolved 0-based column indexes; -1 means absent.
type columns struct {
	code, genus, lat, lon                  int
	species, dbh, height, crownNS, crownEW int
	notes                                  int
}

func resolveColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}

	cols := columns{
		code:    find(codeAliases),
		genus:   find(genusAliases),
		lat:     find(latAliases),
		lon:     find(lonAliases),
		species: find(speciesAliases),
		dbh:     find(dbhAliases),
		height:  find(heightAliases),
		crownNS: find(crownNSAliases),
		crownEW: find(crownEWAliases),
		notes:   find(notesAliases),
	}

	required := []struct {
		idx  int
		name string
	}{
		{cols.code, "TreeCode"},
		{cols.genus, "Genus"},
		{cols.lat, "lat"},
		{cols.lon, "lon"},
	}
	for _, r := range required {
		if r.idx < 0 {
			return cols, fmt.Errorf("%w: required column %q not found", domain.ErrInvalidInventory, r.name)
		}
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// cell returns row[i] or "" when the row is short or the column absent.
// excelize trims trailing empty cells from rows, so short rows are routine.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
