package storage

import (
	"context"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
)

// Package storage contains the binary (PDF) storage abstraction. Locators
// returned by a BinaryStore are opaque to callers and recorded on the material;
// they are only handed back to the same backend for Remove and ResolveURL.

// Directory (or key prefix) per material type. Unrecognized types fall back to
// a generic bucket at the storage level; type validation happens above.
const (
	DirEbooks         = "ebooks"
	DirQuestionPapers = "question-papers"
	DirOthers         = "others"
)

// BinaryStore stores and serves the uploaded binaries.
type BinaryStore interface {
	// Save streams r into the backend under a type-partitioned location and
	// returns the locator to record on the material.
	Save(ctx context.Context, materialType, originalFilename string, r io.Reader, size int64) (string, error)

	// Remove deletes the binary behind a locator. Removing a locator that no
	// longer exists is not an error.
	Remove(ctx context.Context, locator string) error

	// ResolveURL returns a URL a browser can be redirected to for the binary.
	ResolveURL(ctx context.Context, locator string) (string, error)
}

// DirFor maps a material type to its storage directory.
func DirFor(materialType string) string {
	switch materialType {
	case "ebook":
		return DirEbooks
	case "questionPaper":
		return DirQuestionPapers
	default:
		return DirOthers
	}
}

// StoredName builds the stored filename: a unix-millisecond prefix for
// uniqueness, then the original name lowercased with whitespace collapsed to
// hyphens. Two uploads inside the same millisecond can still collide; the
// later filesystem write wins.
func StoredName(originalFilename string) string {
	base := path.Base(strings.ToLower(strings.TrimSpace(originalFilename)))
	normalized := strings.Join(strings.Fields(base), "-")
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + normalized
}
