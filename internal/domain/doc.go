// Package domain models a school tree-inventory survey package.
//
// # Input Package
//
// A survey package is a directory (usually delivered as a ZIP, sometimes via
// an S3-compatible bucket) laid out as:
//
//	<School Name> Tree Data.xlsx
//	Boundaries/
//	    Boundaries.shp  (+ .shx/.dbf/.prj companions)
//	Photos/             (optional)
//	    <TreeCode>*.jpg / .jpeg / .png
//	logo.png            (optional)
//
// The school name is the spreadsheet file stem with the "Tree Data" suffix
// stripped.
//
// # Spreadsheet Conventions
//
// Tree rows live on the "Trees" sheet (falling back to the first sheet when
// no sheet has that name). Header names are matched case-insensitively.
//
// Required columns:
//
//	TreeCode   unique identifier joining rows to photo file names
//	Genus      taxonomic genus, drives marker shape/color
//	lat, lon   WGS-84 coordinates; rows without both cannot be plotted
//	           and are skipped with a warning
//
// Optional columns:
//
//	Species    displayed in the popup
//	DBH1cm     trunk diameter at breast height, centimeters
//	Heightm    tree height, meters
//	CrownNSm   crown spread north-south, meters
//	CrownEWm   crown spread east-west, meters
//	Notes      free text
//
// Duplicate Tree Codes keep the first occurrence; later rows with the same
// code are skipped with a warning.
//
// # Canopy Circles
//
// The canopy overlay radius is derived from the crown spread columns:
// (NS+EW)/4 when both are measured, half the single diameter when only one
// is, no circle at all when neither is. See [TreeRecord.CanopyRadius].
//
// # Photo Naming
//
// A photo belongs to a tree when its file stem contains the Tree Code,
// compared case-insensitively: "t17_front.JPG" belongs to "T17". Photos that
// match no tree are ignored. See [MatchPhoto].
//
// # Genus Styling
//
// Each distinct genus gets a marker shape and color by cycling fixed style
// tables over the sorted genus list, so the assignment is a pure function of
// the set of genera present in the inventory. See [AssignStyles].
//
// # Boundary
//
// The boundary shapefile must already be in geographic (WGS-84) coordinates.
// No reprojection is attempted: a shapefile with vertices outside geographic
// range is rejected and must be re-exported in WGS-84.
package domain
