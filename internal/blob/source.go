package blob

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Download is a resolved file stream ready for the HTTP layer. Filename is
// the attachment display name, built from the document title plus the
// original extension, never the internally generated storage name.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
}

// UpstreamError reports a non-200 response from an external URL.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("external url returned status %d", e.Status)
}

// ErrUnreachable wraps transport failures while contacting an external URL.
var ErrUnreachable = fmt.Errorf("external url unreachable")

// Source is a file reference resolved once from a document's urlFichier:
// either a local path under the blob directory or an external http(s) URL.
type Source interface {
	Fetch(ctx context.Context, titre string) (*Download, error)
}

// Resolve decides the source kind from the stored urlFichier.
func Resolve(dir *Dir, urlFichier string) (Source, error) {
	if urlFichier == "" {
		return nil, ErrEmptyURL
	}
	if strings.HasPrefix(urlFichier, "http://") || strings.HasPrefix(urlFichier, "https://") {
		return &External{URL: urlFichier}, nil
	}
	return &Local{dir: dir, rel: urlFichier}, nil
}

// Local streams a file from the blob directory.
type Local struct {
	dir *Dir
	rel string
}

func (s *Local) Fetch(ctx context.Context, titre string) (*Download, error) {
	p := s.dir.path(s.rel)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat blob: %w", err)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	ext := filepath.Ext(p)
	contentType := probeContentType(f, ext)
	return &Download{
		Body:        f,
		ContentType: contentType,
		Filename:    titre + ext,
	}, nil
}

// probeContentType tries the extension first, then sniffs the leading bytes.
func probeContentType(f *os.File, ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "application/octet-stream"
	}
	if n > 0 {
		return http.DetectContentType(buf[:n])
	}
	return "application/octet-stream"
}

// externalClient bounds connect and response-header waits at 5 seconds.
// The body stream itself is proxied with no further deadline.
var externalClient = &http.Client{
	Transport: &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		ResponseHeaderTimeout: 5 * time.Second,
	},
}

// External proxies an outbound GET against an absolute URL.
type External struct {
	URL string

	// Client overrides the default external client in tests.
	Client *http.Client
}

func (s *External) Fetch(ctx context.Context, titre string) (*Download, error) {
	client := s.Client
	if client == nil {
		client = externalClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &UpstreamError{Status: resp.StatusCode}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{
		Body:        resp.Body,
		ContentType: contentType,
		Filename:    titre + extFromURL(s.URL),
	}, nil
}

// extFromURL parses the extension out of the URL path, ignoring the query.
func extFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return filepath.Ext(u.Path)
}
