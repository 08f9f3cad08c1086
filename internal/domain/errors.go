package domain

import "errors"

// Fatal pipeline errors. Each stage wraps the matching sentinel with the name
// of the missing or invalid artifact; any of them halts the run immediately.
// Row-level problems (missing coordinates, duplicate codes, unmatched photos)
// are never fatal and are logged and counted instead.
var (
	// ErrMissingInput means a required file type is absent from the package.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidInventory means the spreadsheet lacks a required column.
	ErrInvalidInventory = errors.New("invalid inventory")

	// ErrInvalidBoundary means the shapefile has no usable polygon geometry.
	ErrInvalidBoundary = errors.New("invalid boundary")

	// ErrWrite means the output artifact could not be written.
	ErrWrite = errors.New("write failed")
)
