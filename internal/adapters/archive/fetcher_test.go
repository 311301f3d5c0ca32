package archive_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conda-project/internal/adapters/archive"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type member struct {
	name string
	body string
	link string
}

func newFetcher(t *testing.T) *archive.Fetcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return archive.NewFetcher(log)
}

func tarBytes(t *testing.T, gzipped bool, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	var gz *gzip.Writer
	var tw *tar.Writer
	if gzipped {
		gz = gzip.NewWriter(&buf)
		tw = tar.NewWriter(gz)
	} else {
		tw = tar.NewWriter(&buf)
	}

	for _, m := range members {
		hdr := &tar.Header{Name: m.name, Mode: 0o644, Size: int64(len(m.body)), Typeflag: tar.TypeReg}
		switch {
		case m.link != "":
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = m.link
			hdr.Size = 0
		case strings.HasSuffix(m.name, "/"):
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(m.body))
			require.NoError(t, err)
		}
	}

	require.NoError(t, tw.Close())
	if gz != nil {
		require.NoError(t, gz.Close())
	}
	return buf.Bytes()
}

func writeArchive(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, domain.FilePerm))
	return path
}

func zipBytes(t *testing.T, members ...member) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(m.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFetcher_LocalDirectory(t *testing.T) {
	dir := t.TempDir()

	got, err := newFetcher(t).Fetch(context.Background(), dir, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestFetcher_TarGzWithTopLevelDirectory(t *testing.T) {
	ref := writeArchive(t, "demo.tar.gz", tarBytes(t, true,
		member{name: "demo/"},
		member{name: "demo/conda-project.yml", body: "name: demo\n"},
		member{name: "demo/env/environment.yml", body: "dependencies: [python]\n"},
		member{name: "demo/current.yml", link: "env/environment.yml"},
	))
	dest := t.TempDir()

	got, err := newFetcher(t).Fetch(context.Background(), ref, dest, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "demo"), got)
	assert.Equal(t, "name: demo\n", readFile(t, filepath.Join(got, "conda-project.yml")))
	assert.Equal(t, "dependencies: [python]\n", readFile(t, filepath.Join(got, "current.yml")))
}

func TestFetcher_PlainTarIntoTemporaryDirectory(t *testing.T) {
	ref := writeArchive(t, "demo.tar", tarBytes(t, false,
		member{name: "conda-project.yml", body: "name: flat\n"},
		member{name: "environment.yml", body: "dependencies: []\n"},
	))

	got, err := newFetcher(t).Fetch(context.Background(), ref, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(got) })

	assert.Equal(t, "name: flat\n", readFile(t, filepath.Join(got, "conda-project.yml")))
}

func TestFetcher_Zip(t *testing.T) {
	ref := writeArchive(t, "demo.zip", zipBytes(t,
		member{name: "conda-project.yml", body: "name: zipped\n"},
		member{name: "env/environment.yml", body: "dependencies: []\n"},
	))
	dest := t.TempDir()

	got, err := newFetcher(t).Fetch(context.Background(), ref, dest, nil)
	require.NoError(t, err)

	assert.Equal(t, dest, got)
	assert.Equal(t, "name: zipped\n", readFile(t, filepath.Join(dest, "conda-project.yml")))
	assert.Equal(t, "dependencies: []\n", readFile(t, filepath.Join(dest, "env", "environment.yml")))
}

func TestFetcher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ref     func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing local archive",
			ref:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.tgz") },
			wantErr: domain.ErrArchiveFetchFailed,
		},
		{
			name:    "unsupported format",
			ref:     func(t *testing.T) string { return writeArchive(t, "demo.rar", []byte("rar")) },
			wantErr: domain.ErrArchiveUnsupported,
		},
		{
			name: "member escapes destination",
			ref: func(t *testing.T) string {
				return writeArchive(t, "evil.tgz", tarBytes(t, true, member{name: "../evil.txt", body: "x"}))
			},
			wantErr: domain.ErrArchivePathEscape,
		},
		{
			name: "symlink escapes destination",
			ref: func(t *testing.T) string {
				return writeArchive(t, "evil.tar", tarBytes(t, false, member{name: "passwd", link: "/etc/passwd"}))
			},
			wantErr: domain.ErrArchivePathEscape,
		},
		{
			name: "zip member escapes destination",
			ref: func(t *testing.T) string {
				return writeArchive(t, "evil.zip", zipBytes(t, member{name: "../../evil.txt", body: "x"}))
			},
			wantErr: domain.ErrArchivePathEscape,
		},
		{
			name:    "corrupt gzip",
			ref:     func(t *testing.T) string { return writeArchive(t, "broken.tgz", []byte("not gzip")) },
			wantErr: domain.ErrArchiveExtractFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFetcher(t).Fetch(context.Background(), tt.ref(t), t.TempDir(), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestFetcher_Remote(t *testing.T) {
	payload := tarBytes(t, true, member{name: "remote/conda-project.yml", body: "name: remote\n"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "s3cret" || r.Header.Get("X-Trace") != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)

	ref := server.URL + "/files/remote.tgz"

	t.Run("downloads with storage options", func(t *testing.T) {
		dest := t.TempDir()
		got, err := newFetcher(t).Fetch(context.Background(), ref, dest, map[string]string{
			archive.OptionUsername: "alice",
			archive.OptionPassword: "s3cret",
			"X-Trace":              "abc",
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "remote"), got)
		assert.Equal(t, "name: remote\n", readFile(t, filepath.Join(got, "conda-project.yml")))
	})

	t.Run("rejected request", func(t *testing.T) {
		_, err := newFetcher(t).Fetch(context.Background(), ref, t.TempDir(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArchiveFetchFailed)
	})

	t.Run("format unknown from URL", func(t *testing.T) {
		_, err := newFetcher(t).Fetch(context.Background(), server.URL+"/download", t.TempDir(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArchiveUnsupported)
	})
}
