package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"studenthub/internal/model"
	"studenthub/internal/storage"
	"studenthub/internal/store"
)

var (
	ErrFileRequired = errors.New("no file uploaded")
	ErrMissingField = errors.New("type and title are required")
	ErrInvalidType  = errors.New("invalid type")
	ErrNotFound     = errors.New("item not found")
)

// UploadInput carries one multipart upload: the binary plus its metadata.
type UploadInput struct {
	Type        string
	Title       string
	Description string
	Subject     string
	Exam        string
	Year        string
	Filename    string
	File        io.Reader
	Size        int64
}

// MaterialService defines the use cases for the study-material catalog.
type MaterialService interface {
	// Library returns the full document with both collections.
	Library(ctx context.Context) (*model.Library, error)

	// Upload stores the binary, then appends a new record to the collection
	// matching in.Type. Nothing reaches the record store if storing the
	// binary fails.
	Upload(ctx context.Context, in UploadInput) (*model.Material, error)

	// Download increments the download counter of the record at pos and
	// returns the URL to redirect the caller to.
	Download(ctx context.Context, materialType string, pos int) (string, error)

	// Delete removes the record at pos and best-effort deletes its binary.
	Delete(ctx context.Context, materialType string, pos int) (model.Material, error)
}

// materialService is a concrete implementation of MaterialService.
type materialService struct {
	materials store.MaterialStore
	binaries  storage.BinaryStore
}

// NewMaterialService constructs a new MaterialService.
func NewMaterialService(materials store.MaterialStore, binaries storage.BinaryStore) MaterialService {
	return &materialService{materials: materials, binaries: binaries}
}

func (s *materialService) Library(ctx context.Context) (*model.Library, error) {
	return s.materials.Read(ctx)
}

func (s *materialService) Upload(ctx context.Context, in UploadInput) (*model.Material, error) {
	if in.File == nil {
		return nil, ErrFileRequired
	}
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Title) == "" {
		return nil, ErrMissingField
	}
	collection, ok := model.CollectionFor(in.Type)
	if !ok {
		return nil, ErrInvalidType
	}

	// Binary first: the record is appended only after the file is confirmed
	// written, so a storage failure commits nothing.
	locator, err := s.binaries.Save(ctx, in.Type, in.Filename, in.File, in.Size)
	if err != nil {
		return nil, fmt.Errorf("save binary: %w", err)
	}

	year := strings.TrimSpace(in.Year)
	if year == "" {
		year = model.YearUnknown
	}
	m := model.Material{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		File:        locator,
		Subject:     strings.TrimSpace(in.Subject),
		Exam:        strings.TrimSpace(in.Exam),
		Year:        year,
		Downloads:   0,
		CreatedAt:   time.Now().UTC(),
	}

	stored, err := s.materials.Append(ctx, collection, m)
	if err != nil {
		// Rollback: remove the binary so a failed append leaves no orphan.
		if delErr := s.binaries.Remove(ctx, locator); delErr != nil {
			return nil, fmt.Errorf("append record failed: %v; rollback remove failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("append record failed: %w", err)
	}
	return stored, nil
}

func (s *materialService) Download(ctx context.Context, materialType string, pos int) (string, error) {
	collection, ok := model.CollectionFor(materialType)
	if !ok {
		return "", ErrInvalidType
	}

	mutated, err := s.materials.MutateAt(ctx, collection, pos, func(m *model.Material) {
		m.Downloads++
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("count download: %w", err)
	}

	url, err := s.binaries.ResolveURL(ctx, mutated.File)
	if err != nil {
		return "", fmt.Errorf("resolve binary url: %w", err)
	}
	return url, nil
}

func (s *materialService) Delete(ctx context.Context, materialType string, pos int) (model.Material, error) {
	collection, ok := model.CollectionFor(materialType)
	if !ok {
		return model.Material{}, ErrInvalidType
	}

	removed, err := s.materials.RemoveAt(ctx, collection, pos)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Material{}, ErrNotFound
		}
		return model.Material{}, fmt.Errorf("remove record: %w", err)
	}

	// Best effort: an orphaned file is less harmful than a stuck record, so a
	// failed binary delete is logged and swallowed.
	if err := s.binaries.Remove(ctx, removed.File); err != nil {
		logJSON(map[string]any{
			"component": "service",
			"event":     "binary_delete_failed",
			"locator":   removed.File,
			"error":     err.Error(),
		})
	}
	return removed, nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "warn"
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal service log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
