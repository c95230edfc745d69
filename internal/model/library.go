package model

// Collection names inside the library document. Order within a collection is
// insertion order and is significant: positional indexes address records.
const (
	CollectionEbooks         = "ebooks"
	CollectionQuestionPapers = "questionPapers"
)

// Material type discriminators accepted by the upload and mutation endpoints.
const (
	TypeEbook         = "ebook"
	TypeQuestionPaper = "questionPaper"
)

// Library is the whole persisted document: two named, ordered collections.
type Library struct {
	Ebooks         []Material `json:"ebooks"`
	QuestionPapers []Material `json:"questionPapers"`
}

// NewLibrary returns an empty document with both collections allocated, so it
// always serializes as {"ebooks":[],"questionPapers":[]} rather than nulls.
func NewLibrary() *Library {
	return &Library{
		Ebooks:         []Material{},
		QuestionPapers: []Material{},
	}
}

// CollectionFor maps a type discriminator to its collection name.
func CollectionFor(materialType string) (string, bool) {
	switch materialType {
	case TypeEbook:
		return CollectionEbooks, true
	case TypeQuestionPaper:
		return CollectionQuestionPapers, true
	default:
		return "", false
	}
}

// Collection returns the named collection slice, or false for an unknown name.
func (l *Library) Collection(name string) ([]Material, bool) {
	switch name {
	case CollectionEbooks:
		return l.Ebooks, true
	case CollectionQuestionPapers:
		return l.QuestionPapers, true
	default:
		return nil, false
	}
}

// SetCollection replaces the named collection slice.
func (l *Library) SetCollection(name string, items []Material) bool {
	switch name {
	case CollectionEbooks:
		l.Ebooks = items
	case CollectionQuestionPapers:
		l.QuestionPapers = items
	default:
		return false
	}
	return true
}
