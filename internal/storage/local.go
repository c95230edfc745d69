package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// localStore implements BinaryStore on the local filesystem, partitioning
// files into type-named directories under a single root. Locators are
// slash-separated paths relative to the root (e.g. "ebooks/169...-title.pdf").
type localStore struct {
	root       string
	publicBase string
}

// NewLocal creates a filesystem-backed BinaryStore rooted at root. publicBase
// is the URL prefix under which the root is served statically; redirect URLs
// are publicBase + "/" + locator.
func NewLocal(root, publicBase string) (BinaryStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStore{
		root:       root,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Save writes the binary under <root>/<type dir>/<stored name>. A partial file
// left by a failed copy is removed.
func (l *localStore) Save(ctx context.Context, materialType, originalFilename string, r io.Reader, size int64) (string, error) {
	if r == nil {
		return "", fmt.Errorf("reader is nil")
	}

	dir := DirFor(materialType)
	if err := os.MkdirAll(filepath.Join(l.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("create type directory: %w", err)
	}

	locator := path.Join(dir, StoredName(originalFilename))
	dstPath := filepath.Join(l.root, filepath.FromSlash(locator))

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("close file: %w", err)
	}
	return locator, nil
}

// Remove deletes the file behind the locator. A missing file counts as
// removed, so deletes stay idempotent.
func (l *localStore) Remove(ctx context.Context, locator string) error {
	if locator == "" {
		return nil
	}
	p := filepath.Join(l.root, filepath.FromSlash(locator))
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// ResolveURL maps a locator to its statically served path.
func (l *localStore) ResolveURL(ctx context.Context, locator string) (string, error) {
	if locator == "" {
		return "", fmt.Errorf("locator is empty")
	}
	return l.publicBase + "/" + locator, nil
}
