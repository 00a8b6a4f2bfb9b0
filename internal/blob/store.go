package blob

import (
	"context"
	"errors"
	"io"
)

// URLPrefix is the path prefix recorded in urlFichier for locally stored
// files. It is part of the wire contract with the frontend and stays fixed
// even when the backing directory is configured elsewhere.
const URLPrefix = "uploads/"

var (
	// ErrNotFound means the referenced blob does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrEmptyURL means the document record carries no file reference.
	ErrEmptyURL = errors.New("document url is empty")
)

// Store persists uploaded file bytes under a fresh opaque name that keeps
// the original extension. Save returns the urlFichier value to record:
// a relative "uploads/..." path for local storage, an absolute https URL
// for object storage.
type Store interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}
