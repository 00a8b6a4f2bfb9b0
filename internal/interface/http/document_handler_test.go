package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samersoltani/dewini-server/internal/application"
	"github.com/samersoltani/dewini-server/internal/blob"
	"github.com/samersoltani/dewini-server/internal/domain/entity"
	handlers "github.com/samersoltani/dewini-server/internal/interface/http"
	"github.com/samersoltani/dewini-server/internal/router"
	"github.com/samersoltani/dewini-server/internal/router/modules"
)

type fakeDocumentRepo struct {
	mu   sync.Mutex
	seq  int
	docs map[string]*entity.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[string]*entity.Document{}}
}

func (f *fakeDocumentRepo) Create(_ context.Context, d *entity.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = "d" + strconv.Itoa(f.seq)
	cp := *d
	f.docs[d.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.docs[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeDocumentRepo) ListAll(_ context.Context) ([]entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListByUser(_ context.Context, userID string) ([]entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Document
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) seed(d entity.Document) entity.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	d.ID = "d" + strconv.Itoa(f.seq)
	if d.DateUpload.IsZero() {
		d.DateUpload = time.Now()
	}
	cp := d
	f.docs[d.ID] = &cp
	return d
}

func newDocumentEngine(t *testing.T) (*gin.Engine, *fakeDocumentRepo) {
	t.Helper()
	repo := newFakeDocumentRepo()
	dir, err := blob.NewDir(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	svc := application.NewDocumentService(repo, dir, dir, testLogger())

	reg := router.NewRegistry(gin.New())
	reg.Add(modules.NewDocumentModule(handlers.NewDocumentHandler(svc, testLogger())))
	reg.RegisterAll()
	return reg.Engine, repo
}

func uploadMultipart(t *testing.T, e *gin.Engine, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func doRequest(e *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestListDocumentsEndpoint(t *testing.T) {
	e, repo := newDocumentEngine(t)
	repo.seed(entity.Document{Titre: "Analyse", Type: "analyse", UserID: "u1"})
	repo.seed(entity.Document{Titre: "Ordonnance", Type: "ordonnance", UserID: "u2"})

	w := doRequest(e, http.MethodGet, "/api/documents")
	require.Equal(t, http.StatusOK, w.Code)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	assert.Len(t, docs, 2)
}

func TestListDocumentsByUserEndpoint(t *testing.T) {
	e, repo := newDocumentEngine(t)
	repo.seed(entity.Document{Titre: "Analyse", Type: "analyse", UserID: "u1"})
	repo.seed(entity.Document{Titre: "Ordonnance", Type: "ordonnance", UserID: "u2"})

	// compatibility behavior: returns every document, not just u1's
	w := doRequest(e, http.MethodGet, "/api/documents/user/u1")
	require.Equal(t, http.StatusOK, w.Code)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	assert.Len(t, docs, 2)
}

func TestUploadEndpoint(t *testing.T) {
	e, _ := newDocumentEngine(t)

	w := uploadMultipart(t, e, map[string]string{
		"titre": "Analyse", "type": "analyse", "userId": "u1",
	}, "analyse.PDF", "contenu pdf")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Document uploaded successfully", body["message"])

	doc, ok := body["document"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Analyse", doc["titre"])
	assert.Equal(t, "u1", doc["userId"])

	url, _ := doc["urlFichier"].(string)
	assert.True(t, strings.HasPrefix(url, "uploads/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"), "extension is lowercased: %s", url)
	assert.NotContains(t, url, "analyse", "stored name is opaque")
}

func TestUploadEndpointWithoutFile(t *testing.T) {
	e, _ := newDocumentEngine(t)

	w := uploadMultipart(t, e, map[string]string{
		"titre": "Note", "type": "autre", "userId": "u1",
	}, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	doc, ok := body["document"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "", doc["urlFichier"])
}

func TestDeleteDocumentEndpoint(t *testing.T) {
	e, repo := newDocumentEngine(t)
	d := repo.seed(entity.Document{Titre: "Analyse", Type: "analyse", UserID: "u1"})

	w := doRequest(e, http.MethodDelete, "/api/documents/"+d.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Document deleted successfully", decodeBody(t, w)["message"])

	// deleting again still succeeds
	w = doRequest(e, http.MethodDelete, "/api/documents/"+d.ID)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDownloadEndpointLocal(t *testing.T) {
	e, _ := newDocumentEngine(t)

	w := uploadMultipart(t, e, map[string]string{
		"titre": "Carnet", "type": "autre", "userId": "u1",
	}, "carnet.txt", "pages du carnet")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decodeBody(t, w)["document"].(map[string]any)
	id, _ := doc["id"].(string)
	require.NotEmpty(t, id)

	w = doRequest(e, http.MethodGet, "/api/documents/download/"+id)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pages du carnet", w.Body.String())
	assert.Equal(t, `attachment; filename="Carnet.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Content-Disposition", w.Header().Get("Access-Control-Expose-Headers"))
}

func TestDownloadEndpointMissingRecord(t *testing.T) {
	e, _ := newDocumentEngine(t)

	w := doRequest(e, http.MethodGet, "/api/documents/download/inconnu")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document not found", decodeBody(t, w)["message"])
}

func TestDownloadEndpointEmptyURL(t *testing.T) {
	e, repo := newDocumentEngine(t)
	d := repo.seed(entity.Document{Titre: "Note", Type: "autre", UserID: "u1"})

	w := doRequest(e, http.MethodGet, "/api/documents/download/"+d.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Document URL is empty", decodeBody(t, w)["message"])
}

func TestDownloadEndpointMissingFile(t *testing.T) {
	e, repo := newDocumentEngine(t)
	d := repo.seed(entity.Document{Titre: "Note", Type: "autre", UserID: "u1", URLFichier: "uploads/disparu.txt"})

	w := doRequest(e, http.MethodGet, "/api/documents/download/"+d.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", decodeBody(t, w)["message"])
}

func TestDownloadEndpointExternal(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("contenu externe"))
	}))
	defer upstream.Close()

	e, repo := newDocumentEngine(t)
	d := repo.seed(entity.Document{Titre: "Rapport", Type: "analyse", UserID: "u1", URLFichier: upstream.URL + "/fichier.pdf"})

	w := doRequest(e, http.MethodGet, "/api/documents/download/"+d.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "contenu externe", w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Rapport.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestDownloadEndpointExternalMirrorsStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "interdit", http.StatusForbidden)
	}))
	defer upstream.Close()

	e, repo := newDocumentEngine(t)
	d := repo.seed(entity.Document{Titre: "Rapport", Type: "analyse", UserID: "u1", URLFichier: upstream.URL + "/fichier.pdf"})

	w := doRequest(e, http.MethodGet, "/api/documents/download/"+d.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
