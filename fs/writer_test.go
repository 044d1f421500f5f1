package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/scam"
	"github.com/fwojciec/scam/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "simple path",
			url:  "https://example.com/docs/api/users",
			want: "example.com/docs/api/users.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/docs/",
			want: "example.com/docs/index.md",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			want: "example.com/index.md",
		},
		{
			name: "root without trailing slash",
			url:  "https://example.com",
			want: "example.com/index.md",
		},
		{
			name: "keeps query string in file name",
			url:  "https://example.com/docs/api?version=2&lang=en",
			want: "example.com/docs/api_version-2_lang-en.md",
		},
		{
			name: "ignores fragment",
			url:  "https://example.com/docs/api#section",
			want: "example.com/docs/api.md",
		},
		{
			name: "port is part of the host directory",
			url:  "http://127.0.0.1:8080/a",
			want: "127.0.0.1_8080/a.md",
		},
		{
			name: "dot segments cannot escape the host",
			url:  "https://example.com/../../etc/passwd",
			want: "example.com/etc/passwd.md",
		},
		{
			name:    "rejects URL without host",
			url:     "/relative/path",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url, ".md")

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	doc := &scam.Document{
		URL:         "https://example.com/docs/api",
		Content:     "# API Reference",
		ContentHash: "abc123",
		ID:          7,
	}

	want := `---
url: https://example.com/docs/api
id: 7
hash: abc123
---

# API Reference`

	assert.Equal(t, want, fs.FormatDocument(doc))

	doc.Title = "API"
	assert.Contains(t, fs.FormatDocument(doc), "url: https://example.com/docs/api\ntitle: API\nid: 7\n")
}

func TestWriter_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("writes to the staging directory until commit", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out")
		w := fs.NewWriter(out, ".txt")

		err := w.CreateDocument(context.Background(), &scam.Document{
			URL:     "https://example.com/docs/api",
			Content: "hello",
			ID:      1,
		})
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(out+".tmp", "example.com", "docs", "api.txt"))
		require.NoError(t, err, "file should exist in temp directory")

		_, err = os.Stat(out)
		assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")

		require.NoError(t, w.Commit())

		content, err := os.ReadFile(filepath.Join(out, "example.com", "docs", "api.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "url: https://example.com/docs/api")
		assert.Contains(t, string(content), "\n---\n\nhello")

		_, err = os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(err), "temp directory should be gone after commit")
	})

	t.Run("commit replaces previous output", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out")
		require.NoError(t, os.MkdirAll(filepath.Join(out, "stale"), 0755))

		w := fs.NewWriter(out, ".md")
		require.NoError(t, w.CreateDocument(context.Background(), &scam.Document{URL: "https://example.com/", ID: 1}))
		require.NoError(t, w.Commit())

		_, err := os.Stat(filepath.Join(out, "stale"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(out, "example.com", "index.md"))
		assert.NoError(t, err)
	})

	t.Run("commit with nothing written creates empty directory", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out")
		w := fs.NewWriter(out, ".md")

		require.NoError(t, w.Commit())

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("abort removes staged files", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out")
		w := fs.NewWriter(out, ".md")
		require.NoError(t, w.CreateDocument(context.Background(), &scam.Document{URL: "https://example.com/a", ID: 1}))

		require.NoError(t, w.Abort())

		_, err := os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("validates document", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(filepath.Join(t.TempDir(), "out"), ".md")

		err := w.CreateDocument(context.Background(), &scam.Document{Content: "no url"})

		require.Error(t, err)
		assert.Equal(t, scam.EINVALID, scam.ErrorCode(err))
	})
}
