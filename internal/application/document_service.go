package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samersoltani/dewini-server/internal/blob"
	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/internal/domain/repository"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentService orchestrates document records and their blobs.
// Blobs points wherever uploads go (local dir or GCS); Dir is always the
// local directory downloads of relative urlFichier paths resolve against.
type DocumentService struct {
	Docs   repository.DocumentRepository
	Blobs  blob.Store
	Dir    *blob.Dir
	Logger *logrus.Logger
}

func NewDocumentService(docs repository.DocumentRepository, blobs blob.Store, dir *blob.Dir, logger *logrus.Logger) *DocumentService {
	return &DocumentService{Docs: docs, Blobs: blobs, Dir: dir, Logger: logger}
}

func (s *DocumentService) ListAll(ctx context.Context) ([]entity.Document, error) {
	return s.Docs.ListAll(ctx)
}

// ListByUser currently returns the full unfiltered set; the frontend
// filters client-side and breaks when given the filtered list.
// TODO: switch to s.Docs.ListByUser once the frontend drops that assumption.
func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]entity.Document, error) {
	return s.Docs.ListAll(ctx)
}

// UploadInput carries the multipart fields. File is nil when no file was
// attached; a document record is created either way.
type UploadInput struct {
	Titre    string
	Type     string
	UserID   string
	Filename string
	File     io.Reader
}

// UploadResult reports which half of the non-transactional write pair
// completed. BlobWritten without RecordSaved means an orphan file exists
// under the blob directory.
type UploadResult struct {
	Document    *entity.Document
	BlobWritten bool
	RecordSaved bool
}

// Upload writes the blob first, then inserts the record. A blob-write
// failure leaves no record; a record-insert failure leaves the blob behind.
func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	var res UploadResult

	urlFichier := ""
	if in.File != nil {
		u, err := s.Blobs.Save(ctx, in.Filename, in.File)
		if err != nil {
			return res, err
		}
		res.BlobWritten = true
		urlFichier = u
	}

	d := &entity.Document{
		Titre:      in.Titre,
		Type:       in.Type,
		URLFichier: urlFichier,
		DateUpload: time.Now(),
		UserID:     in.UserID,
	}
	if err := s.Docs.Create(ctx, d); err != nil {
		if res.BlobWritten {
			s.Logger.WithError(err).WithField("url_fichier", urlFichier).
				Warn("document insert failed after blob write, file orphaned")
		}
		return res, err
	}
	res.RecordSaved = true
	res.Document = d
	return res, nil
}

// Delete removes the record only. Blob bytes stay on disk and unknown ids
// succeed silently.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.Docs.Delete(ctx, id)
}

// Download looks up the record, resolves its source once, and returns the
// stream. Errors surface as ErrDocumentNotFound, blob.ErrEmptyURL,
// blob.ErrNotFound, blob.ErrUnreachable, *blob.UpstreamError, or a plain
// error for unreadable local files.
func (s *DocumentService) Download(ctx context.Context, id string) (*blob.Download, error) {
	d, err := s.Docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDocumentNotFound
	}
	src, err := blob.Resolve(s.Dir, d.URLFichier)
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx, d.Titre)
}
