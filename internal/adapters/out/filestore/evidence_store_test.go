package filestore_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fulfillment/internal/adapters/out/filestore"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidenceStore_Upload(t *testing.T) {
	t.Run("stores the file and returns its url", func(t *testing.T) {
		dir := t.TempDir()
		store, err := filestore.NewEvidenceStore(dir, "https://files.example.com/evidence/")
		require.NoError(t, err)

		url, err := store.Upload(context.Background(), "../../receipt photo.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "https://files.example.com/evidence/"))
		assert.True(t, strings.HasSuffix(url, "-receipt-photo.jpg"))
		stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(stored))
	})

	tests := []struct {
		name        string
		contentType string
		content     []byte
		wantErr     error
	}{
		{name: "unsupported type", contentType: "text/html", content: []byte("<p>"), wantErr: errs.ErrValueIsInvalid},
		{name: "malformed type", contentType: ";", content: []byte("x"), wantErr: errs.ErrValueIsInvalid},
		{name: "empty file", contentType: "image/png", content: nil, wantErr: errs.ErrValueIsRequired},
		{name: "too large", contentType: "image/png", content: bytes.Repeat([]byte("x"), filestore.MaxEvidenceSize+1), wantErr: errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := filestore.NewEvidenceStore(dir, "/evidence")
			require.NoError(t, err)

			_, err = store.Upload(context.Background(), "x.png", tt.contentType, bytes.NewReader(tt.content))

			require.ErrorIs(t, err, tt.wantErr)
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "failed uploads leave nothing behind")
		})
	}
}
