package models

import "time"

// UploadKind identifies the source type of an upload. Exactly one kind
// applies to each upload.
type UploadKind string

const (
	UploadKindPDF     UploadKind = "pdf"
	UploadKindDOCX    UploadKind = "docx"
	UploadKindYouTube UploadKind = "youtube"
)

// IsDocument reports whether the kind carries a local file (as opposed to a
// video link).
func (k UploadKind) IsDocument() bool {
	return k == UploadKindPDF || k == UploadKindDOCX
}

// Upload is a backend-registered document or video source available for
// question-answering. UploadNo is assigned by the backend; the client never
// synthesizes it.
type Upload struct {
	UploadNo    string     `json:"upload_no"`
	Kind        UploadKind `json:"kind"`
	DisplayName string     `json:"display_name"`
	UploadedAt  time.Time  `json:"uploaded_at"`

	// SizeBytes is set for document kinds only.
	SizeBytes int64 `json:"size_bytes,omitempty"`
	// SourceURL is set for the youtube kind only.
	SourceURL string `json:"source_url,omitempty"`
}

// UploadRequest is the transient form state collected before a submission:
// one selected kind plus either a file path or a URL. It lives only while an
// upload attempt is underway and is discarded on success or explicit cancel.
type UploadRequest struct {
	Kind     UploadKind
	FilePath string
	URL      string
}
