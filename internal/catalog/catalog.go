// Package catalog provides read-only views over the materials library:
// filtering, sorting, facet extraction, and the aggregate strips shown on
// a landing page. All view functions are pure; they never mutate their
// input and never talk to the server. Client is the one piece that does
// network I/O.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"studenthub/internal/model"
)

// DefaultLimit is how many items the aggregate views return when the
// caller does not ask for a specific count.
const DefaultLimit = 6

// Snapshot is an immutable point-in-time copy of both collections.
type Snapshot struct {
	Ebooks         []model.Material
	QuestionPapers []model.Material
}

// EmptySnapshot returns a snapshot with no materials in either collection.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Ebooks:         []model.Material{},
		QuestionPapers: []model.Material{},
	}
}

// Client fetches library snapshots from a running materials server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client against the given server base URL, e.g.
// "http://localhost:4000". A nil httpClient uses a default with a
// 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Load fetches the full library. On any failure it returns an empty
// snapshot alongside the error, so callers can always render something.
func (c *Client) Load(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/materials", nil)
	if err != nil {
		return EmptySnapshot(), err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return EmptySnapshot(), err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return EmptySnapshot(), fmt.Errorf("load materials: unexpected status %d", resp.StatusCode)
	}
	var lib model.Library
	if err := json.NewDecoder(resp.Body).Decode(&lib); err != nil {
		return EmptySnapshot(), fmt.Errorf("load materials: decode: %w", err)
	}
	s := EmptySnapshot()
	if lib.Ebooks != nil {
		s.Ebooks = lib.Ebooks
	}
	if lib.QuestionPapers != nil {
		s.QuestionPapers = lib.QuestionPapers
	}
	return s, nil
}

// Query holds the filter criteria. Search is a case-insensitive substring
// match over title, description, exam, subject, and year; Exam and Year
// are exact facet matches. Empty fields match everything.
type Query struct {
	Search string
	Exam   string
	Year   string
}

// Filter returns the materials matching every non-empty criterion,
// preserving input order. The input slice is never modified.
func Filter(items []model.Material, q Query) []model.Material {
	out := []model.Material{}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, m := range items {
		if q.Exam != "" && m.Exam != q.Exam {
			continue
		}
		if q.Year != "" && m.Year != q.Year {
			continue
		}
		if search != "" && !matchesSearch(m, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// matchesSearch checks q (already lowercased) against the searchable
// text of a material.
func matchesSearch(m model.Material, q string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		m.Title, m.Description, m.Exam, m.Subject, m.Year,
	}, " "))
	return strings.Contains(haystack, q)
}

// SortKey selects a material ordering.
type SortKey string

const (
	// SortTitle orders by title ascending, case-insensitively, using
	// locale-aware collation.
	SortTitle SortKey = "title"
	// SortDownloads orders by download count descending.
	SortDownloads SortKey = "downloads"
	// SortRecent orders by creation time descending, newest first.
	SortRecent SortKey = "recent"
)

// SortBy returns a sorted copy of items. The input slice is never
// modified. Title and download sorts are stable: ties retain their
// relative input order. The recent sort breaks creation-time ties by
// descending original position, so later-appended items win.
func SortBy(items []model.Material, key SortKey) []model.Material {
	out := make([]model.Material, len(items))
	copy(out, items)

	switch key {
	case SortTitle:
		cl := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return cl.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortDownloads:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Downloads > out[j].Downloads
		})
	case SortRecent:
		idx := make([]int, len(out))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			i, j := idx[a], idx[b]
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return i > j
		})
		sorted := make([]model.Material, len(out))
		for k, i := range idx {
			sorted[k] = out[i]
		}
		return sorted
	}
	return out
}

// Recent returns the n most recently added materials across both
// collections. n <= 0 means DefaultLimit.
func Recent(s *Snapshot, n int) []model.Material {
	return firstN(SortBy(merged(s), SortRecent), n)
}

// Popular returns the n most downloaded materials across both
// collections. n <= 0 means DefaultLimit.
func Popular(s *Snapshot, n int) []model.Material {
	return firstN(SortBy(merged(s), SortDownloads), n)
}

func merged(s *Snapshot) []model.Material {
	out := make([]model.Material, 0, len(s.Ebooks)+len(s.QuestionPapers))
	out = append(out, s.Ebooks...)
	out = append(out, s.QuestionPapers...)
	return out
}

func firstN(items []model.Material, n int) []model.Material {
	if n <= 0 {
		n = DefaultLimit
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// FacetField selects a material field for facet extraction.
type FacetField string

const (
	FacetExam FacetField = "exam"
	FacetYear FacetField = "year"
)

// Facets returns the distinct non-empty values of the given field, in
// order of first occurrence.
func Facets(items []model.Material, field FacetField) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, m := range items {
		var v string
		switch field {
		case FacetExam:
			v = m.Exam
		case FacetYear:
			v = m.Year
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
