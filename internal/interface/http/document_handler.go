package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/samersoltani/dewini-server/internal/application"
	"github.com/samersoltani/dewini-server/internal/blob"
	"github.com/samersoltani/dewini-server/pkg/response"
)

// DocumentHandler exposes document listing, upload, delete, and download.
type DocumentHandler struct {
	Svc    *application.DocumentService
	Logger *logrus.Logger
}

func NewDocumentHandler(svc *application.DocumentService, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{Svc: svc, Logger: logger}
}

// ListAll GET /api/documents
func (h *DocumentHandler) ListAll(c *gin.Context) {
	docs, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("fetching documents failed")
		response.Message(c, http.StatusInternalServerError, "Error fetching documents: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, docs)
}

// ListByUser GET /api/documents/user/:userId
func (h *DocumentHandler) ListByUser(c *gin.Context) {
	docs, err := h.Svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.Logger.WithError(err).Error("fetching documents failed")
		response.Message(c, http.StatusInternalServerError, "Error fetching documents: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Upload POST /api/documents/upload (multipart: titre, type, userId, file?)
func (h *DocumentHandler) Upload(c *gin.Context) {
	in := application.UploadInput{
		Titre:  c.PostForm("titre"),
		Type:   c.PostForm("type"),
		UserID: c.PostForm("userId"),
	}

	file, header, err := c.Request.FormFile("file")
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		in.File = file
		in.Filename = header.Filename
	case errors.Is(err, http.ErrMissingFile):
		// no file attached; the record is still created with an empty url
	default:
		response.Message(c, http.StatusBadRequest, "Error handling file upload: "+err.Error())
		return
	}

	res, err := h.Svc.Upload(c.Request.Context(), in)
	if err != nil {
		h.Logger.WithError(err).Error("upload failed")
		response.Message(c, http.StatusBadRequest, "Error uploading document: "+err.Error())
		return
	}
	response.WithData(c, http.StatusOK, "Document uploaded successfully", "document", res.Document)
}

// Delete DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Logger.WithError(err).Error("delete failed")
		response.Message(c, http.StatusBadRequest, "Error deleting document: "+err.Error())
		return
	}
	response.Message(c, http.StatusOK, "Document deleted successfully")
}

// Download GET /api/documents/download/:id
// Streams the blob (local file or proxied external URL) as an attachment
// named after the document title plus the original extension.
func (h *DocumentHandler) Download(c *gin.Context) {
	dl, err := h.Svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.downloadError(c, err)
		return
	}
	defer func() { _ = dl.Body.Close() }()

	extraHeaders := map[string]string{
		"Content-Disposition":           `attachment; filename="` + dl.Filename + `"`,
		"Access-Control-Expose-Headers": "Content-Disposition",
	}
	c.DataFromReader(http.StatusOK, -1, dl.ContentType, dl.Body, extraHeaders)
}

func (h *DocumentHandler) downloadError(c *gin.Context, err error) {
	var upstream *blob.UpstreamError
	switch {
	case errors.Is(err, application.ErrDocumentNotFound):
		response.Message(c, http.StatusNotFound, "Document not found")
	case errors.Is(err, blob.ErrEmptyURL):
		response.Message(c, http.StatusBadRequest, "Document URL is empty")
	case errors.Is(err, blob.ErrNotFound):
		response.Message(c, http.StatusNotFound, "File not found")
	case errors.As(err, &upstream):
		// mirror the upstream status, as the frontend expects
		response.Message(c, upstream.Status, err.Error())
	case errors.Is(err, blob.ErrUnreachable):
		response.Message(c, http.StatusBadGateway, "Error accessing external URL: "+err.Error())
	default:
		h.Logger.WithError(err).Error("download failed")
		response.Message(c, http.StatusInternalServerError, "Error downloading document: "+err.Error())
	}
}
