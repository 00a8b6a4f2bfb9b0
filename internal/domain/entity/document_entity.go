package entity

import (
	"strings"
	"time"
)

// Document is a record describing one uploaded (or externally linked) file.
// URLFichier is either a relative path under the blob directory
// (e.g. "uploads/<name>") or an absolute http(s) URL; it is empty when no
// file was attached at upload time. Records are never mutated after creation.
type Document struct {
	ID         string    `json:"id"`
	Titre      string    `json:"titre"`
	Type       string    `json:"type"`
	URLFichier string    `json:"urlFichier"`
	DateUpload time.Time `json:"dateUpload"`
	UserID     string    `json:"userId"`
}

// IsExternal reports whether the document points at an absolute http(s) URL
// rather than a file under the blob directory.
func (d *Document) IsExternal() bool {
	return strings.HasPrefix(d.URLFichier, "http://") || strings.HasPrefix(d.URLFichier, "https://")
}
