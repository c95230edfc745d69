package model

import "time"

// YearUnknown is the sentinel stored when an upload provides no year.
// Years are free-form text ("2023", "2023-24"), so there is no zero value to lean on.
const YearUnknown = "—"

// Material represents one catalog entry (an e-book or a question paper).
// This is a pure domain model with no persistence-specific dependencies or tags;
// the JSON tags double as the wire format of the read endpoint and the on-disk document.
type Material struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        string    `json:"file"`
	Subject     string    `json:"subject"`
	Exam        string    `json:"exam"`
	Year        string    `json:"year"`
	Downloads   int       `json:"downloads"`
	CreatedAt   time.Time `json:"createdAt"`
}
