package models

import (
	"slices"
	"time"
)

// Batch is a named set of documents uploaded together and tracked as one
// lifecycle unit. The batch owns its documents; nothing is shared across
// batches and nothing is ever deleted.
type Batch struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	UploadedAt     time.Time   `json:"uploaded_at"`
	TotalDocuments int         `json:"total_documents"`
	Status         BatchStatus `json:"status"`
	StatusLabel    string      `json:"status_label"`

	DocumentsReviewed int `json:"documents_reviewed"`
	SamplesReviewed   int `json:"samples_reviewed"`
	SamplesGood       int `json:"samples_good"`

	// SampleDocumentIDs is the quality-review sample, fixed at first
	// selection so every review session sees the same documents.
	SampleDocumentIDs []string `json:"sample_document_ids,omitempty"`

	// ErrorMessage is set only for ingestion-time failures, not for
	// review-quality failures.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Document is one judgment file inside a batch.
type Document struct {
	ID       string         `json:"id"`
	BatchID  string         `json:"batch_id"`
	FileName string         `json:"file_name"`
	Status   DocumentStatus `json:"status"`

	BasicMetadata *BasicMetadata `json:"basic_metadata,omitempty"`

	// OriginalBasicMetadata is the extractor's output as it was when the
	// document was first loaded for review. Captured once, never
	// overwritten; it is the diff baseline for the review audit.
	OriginalBasicMetadata *BasicMetadata `json:"original_basic_metadata,omitempty"`

	SummaryMetadata *SummaryMetadata `json:"summary_metadata,omitempty"`

	ReviewStatus           ReviewStatus `json:"review_status"`
	IsModifiedInThisReview bool         `json:"is_modified_in_this_review"`
}

// BasicMetadata holds the structured fields extracted from a judgment.
// List fields keep their order for display; the order carries no other
// meaning.
type BasicMetadata struct {
	CaseNumber    string   `json:"case_number"`
	CaseName      string   `json:"case_name"`
	Court         string   `json:"court"`
	CaseType      string   `json:"case_type"`
	Date          string   `json:"date"`
	Judges        []string `json:"judges"`
	Citations     []string `json:"citations"`
	Petitioner    string   `json:"petitioner"`
	Respondent    string   `json:"respondent"`
	Advocates     []string `json:"advocates"`
	ActsSections  []string `json:"acts_sections"`
	CasesReferred []string `json:"cases_referred"`
	Verdict       string   `json:"verdict"`
}

// SummaryMetadata holds the free-text facts and summary plus cited cases.
type SummaryMetadata struct {
	Facts     string   `json:"facts"`
	Summary   string   `json:"summary"`
	Citations []string `json:"citations"`
}

// Equal reports whether two metadata records carry the same content.
// Used to decide whether a reviewer's save changed the extractor output.
func (m *BasicMetadata) Equal(other *BasicMetadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.CaseNumber == other.CaseNumber &&
		m.CaseName == other.CaseName &&
		m.Court == other.Court &&
		m.CaseType == other.CaseType &&
		m.Date == other.Date &&
		m.Petitioner == other.Petitioner &&
		m.Respondent == other.Respondent &&
		m.Verdict == other.Verdict &&
		slices.Equal(m.Judges, other.Judges) &&
		slices.Equal(m.Citations, other.Citations) &&
		slices.Equal(m.Advocates, other.Advocates) &&
		slices.Equal(m.ActsSections, other.ActsSections) &&
		slices.Equal(m.CasesReferred, other.CasesReferred)
}

// Clone returns a deep copy.
func (m *BasicMetadata) Clone() *BasicMetadata {
	if m == nil {
		return nil
	}
	out := *m
	out.Judges = slices.Clone(m.Judges)
	out.Citations = slices.Clone(m.Citations)
	out.Advocates = slices.Clone(m.Advocates)
	out.ActsSections = slices.Clone(m.ActsSections)
	out.CasesReferred = slices.Clone(m.CasesReferred)
	return &out
}

// Clone returns a deep copy.
func (m *SummaryMetadata) Clone() *SummaryMetadata {
	if m == nil {
		return nil
	}
	out := *m
	out.Citations = slices.Clone(m.Citations)
	return &out
}

// Clone returns a deep copy of the document, metadata included.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.BasicMetadata = d.BasicMetadata.Clone()
	out.OriginalBasicMetadata = d.OriginalBasicMetadata.Clone()
	out.SummaryMetadata = d.SummaryMetadata.Clone()
	return &out
}

// Clone returns a deep copy of the batch.
func (b *Batch) Clone() *Batch {
	if b == nil {
		return nil
	}
	out := *b
	out.SampleDocumentIDs = slices.Clone(b.SampleDocumentIDs)
	return &out
}
