package domain

import (
	"path/filepath"
	"strings"
)

// PhotoAsset is one photo file linked to a tree, with its content already
// base64-embedded so the renderer never touches the filesystem.
type PhotoAsset struct {
	Path    string
	Code    string
	DataURI string
}

// photoMIMEs maps accepted photo extensions to the MIME type used in the
// embedded data URI. ".jpg" maps to "image/jpeg"; browsers reject "image/jpg".
var photoMIMEs = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// PhotoMIME returns the data-URI MIME type for a photo file name, or ""
// when the extension is not an accepted photo format.
func PhotoMIME(name string) string {
	return photoMIMEs[strings.ToLower(filepath.Ext(name))]
}

// MatchPhoto reports whether a photo file name belongs to the given Tree
// Code. Matching is a case-insensitive substring test against the file stem,
// so "t17_front.JPG" matches code "T17". Non-photo extensions never match.
func MatchPhoto(code, filename string) bool {
	if code == "" || PhotoMIME(filename) == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.Contains(strings.ToLower(stem), strings.ToLower(code))
}
