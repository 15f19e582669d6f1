package models

import "time"

// DocumentType classifies an uploaded file. A type must be chosen before the
// file picker accepts anything.
type DocumentType string

const (
	DocCertification DocumentType = "certification"
	DocLicense       DocumentType = "license"
	DocNationalID    DocumentType = "nida"
	DocDrivingPermit DocumentType = "driving"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocCertification, DocLicense, DocNationalID, DocDrivingPermit:
		return true
	}
	return false
}

// FileMeta describes one accepted upload. Only metadata is persisted; the
// bytes themselves never leave the client in this flow.
type FileMeta struct {
	Name        string       `bson:"name" json:"name"`
	ContentType string       `bson:"content_type" json:"content_type"`
	SizeBytes   int64        `bson:"size_bytes" json:"size_bytes"`
	DocType     DocumentType `bson:"doc_type" json:"doc_type"`
}

// Document is the documents-step payload, keyed by account id.
type Document struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Uploaded  bool       `bson:"uploaded" json:"uploaded"`
	Files     []FileMeta `bson:"files" json:"files"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
