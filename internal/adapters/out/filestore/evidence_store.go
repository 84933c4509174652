// Package filestore keeps payment evidence photos on the local disk and
// serves them back under a public URL prefix.
package filestore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxEvidenceSize caps a single upload.
const MaxEvidenceSize = 10 << 20

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

type EvidenceStore struct {
	dir     string
	baseURL string
}

// NewEvidenceStore stores files in dir, creating it if needed. Returned URLs
// are baseURL followed by the stored file name.
func NewEvidenceStore(dir, baseURL string) (*EvidenceStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create evidence dir: %w", err)
	}
	return &EvidenceStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *EvidenceStore) Dir() string {
	return s.dir
}

// Upload writes content under a unique name and returns its URL. Partial
// writes never become visible.
func (s *EvidenceStore) Upload(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("content type", err)
	}
	ext, ok := allowedTypes[mediaType]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("content type", fmt.Errorf("%q is not accepted", mediaType))
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "evidence"
	}
	fileName := kernel.NewUUID().String() + "-" + base + ext

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(contextReader{ctx: ctx, r: content}, MaxEvidenceSize+1))
	closeErr := tmp.Close()
	if err != nil {
		return "", fmt.Errorf("write evidence: %w", err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close evidence: %w", closeErr)
	}
	if written == 0 {
		return "", errs.NewValueIsRequiredError("evidence")
	}
	if written > MaxEvidenceSize {
		return "", errs.NewValueIsOutOfRangeError("evidence size", written, 1, MaxEvidenceSize)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, fileName)); err != nil {
		return "", fmt.Errorf("store evidence: %w", err)
	}
	return s.baseURL + "/" + fileName, nil
}

// contextReader stops a copy once the request is gone.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
