package form

import (
	"fmt"

	"proinc-backend/internal/models"
)

// Upload policy: at most five files, 10 MB each, pdf/jpeg/png only, and a
// document type must be chosen before the picker accepts anything.
const (
	MaxFiles        = 5
	MaxFileSizeByte = 10 << 20
)

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// FileInput describes one file the client wants to queue.
type FileInput struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// FileRejection carries the per-file diagnostic for anything outside policy.
type FileRejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// addFiles applies the policy and queues what passes. Rejected files never
// enter the draft; each gets its own diagnostic.
func (d *Draft) addFiles(docType models.DocumentType, inputs []FileInput) (accepted []models.FileMeta, rejected []FileRejection) {
	if !docType.Valid() {
		for _, in := range inputs {
			rejected = append(rejected, FileRejection{Name: in.Name, Reason: "select a document type first"})
		}
		return nil, rejected
	}
	d.DocType = docType

	for _, in := range inputs {
		switch {
		case !allowedContentTypes[in.ContentType]:
			rejected = append(rejected, FileRejection{Name: in.Name, Reason: "invalid file type: " + in.ContentType})
		case in.SizeBytes > MaxFileSizeByte:
			rejected = append(rejected, FileRejection{Name: in.Name, Reason: fmt.Sprintf("%s exceeds %dMB", in.Name, MaxFileSizeByte>>20)})
		case len(d.Files) >= MaxFiles:
			rejected = append(rejected, FileRejection{Name: in.Name, Reason: fmt.Sprintf("maximum of %d files reached", MaxFiles)})
		default:
			meta := models.FileMeta{
				Name:        in.Name,
				ContentType: in.ContentType,
				SizeBytes:   in.SizeBytes,
				DocType:     docType,
			}
			d.Files = append(d.Files, meta)
			if _, ok := d.Progress[in.Name]; !ok {
				d.Progress[in.Name] = 0
			}
			accepted = append(accepted, meta)
		}
	}
	return accepted, rejected
}

// setProgress records upload progress for a queued file, clamped to 0-100.
// Progress for a file that was removed (or never queued) is dropped.
func (d *Draft) setProgress(name string, percent int) bool {
	if !d.hasFile(name) {
		return false
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	d.Progress[name] = percent
	return true
}

// removeFile drops a queued file and cancels its progress tracking. Removal
// is allowed before or during upload.
func (d *Draft) removeFile(name string) {
	files := d.Files[:0]
	for _, f := range d.Files {
		if f.Name != name {
			files = append(files, f)
		}
	}
	d.Files = files
	delete(d.Progress, name)
}

func (d *Draft) hasFile(name string) bool {
	for _, f := range d.Files {
		if f.Name == name {
			return true
		}
	}
	return false
}
