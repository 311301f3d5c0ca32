// Package archive fetches project archives from local paths and HTTP URLs and extracts them.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// OptionUsername and OptionPassword select HTTP basic auth for remote archives.
	// Every other option is sent as a request header.
	OptionUsername = "username"
	OptionPassword = "password"

	downloadTimeout = 10 * time.Minute
)

type format int

const (
	formatUnknown format = iota
	formatTar
	formatTarGz
	formatZip
)

// Fetcher implements ports.ArchiveFetcher.
type Fetcher struct {
	logger ports.Logger
	client *http.Client
}

// NewFetcher creates a Fetcher with a default HTTP client.
func NewFetcher(logger ports.Logger) *Fetcher {
	return NewFetcherWithClient(logger, &http.Client{Timeout: downloadTimeout})
}

// NewFetcherWithClient creates a Fetcher that downloads with client.
func NewFetcherWithClient(logger ports.Logger, client *http.Client) *Fetcher {
	return &Fetcher{logger: logger, client: client}
}

// Fetch extracts ref into dest and returns the project directory. A local
// directory is used in place. An empty dest extracts into a new temporary
// directory. When the archive holds a single top-level directory, that
// directory is the project.
func (f *Fetcher) Fetch(ctx context.Context, ref, dest string, options map[string]string) (string, error) {
	name := ref
	archivePath := ref

	if isRemote(ref) {
		u, err := url.Parse(ref)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error()), "archive", ref)
		}
		name = path.Base(u.Path)
		if detectFormat(name) == formatUnknown {
			return "", zerr.With(zerr.Wrap(domain.ErrArchiveUnsupported, "cannot tell the archive format from the URL"), "archive", ref)
		}

		archivePath, err = f.download(ctx, ref, options)
		if err != nil {
			return "", err
		}
		defer func() { _ = os.Remove(archivePath) }()
	} else {
		info, err := os.Stat(ref)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error()), "archive", ref)
		}
		if info.IsDir() {
			return filepath.Abs(ref)
		}
	}

	kind := detectFormat(name)
	if kind == formatUnknown {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveUnsupported, "expected .tar, .tar.gz, .tgz or .zip"), "archive", ref)
	}

	if dest == "" {
		dir, err := os.MkdirTemp("", "conda-project-")
		if err != nil {
			return "", zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
		}
		dest = dir
	}
	dest, err := filepath.Abs(dest)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error()), "directory", dest)
	}
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error()), "directory", dest)
	}

	f.logger.Debug("extracting " + ref + " into " + dest)

	switch kind {
	case formatZip:
		err = extractZip(archivePath, dest)
	default:
		err = extractTarFile(archivePath, dest, kind == formatTarGz)
	}
	if err != nil {
		return "", zerr.With(err, "archive", ref)
	}

	return projectDir(dest)
}

func (f *Fetcher) download(ctx context.Context, ref string, options map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error()), "archive", ref)
	}
	for key, value := range options {
		switch key {
		case OptionUsername, OptionPassword:
		default:
			req.Header.Set(key, value)
		}
	}
	if user, ok := options[OptionUsername]; ok {
		req.SetBasicAuth(user, options[OptionPassword])
	}

	f.logger.Debug("downloading " + ref)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error()), "archive", ref)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := zerr.With(zerr.Wrap(domain.ErrArchiveFetchFailed, "unexpected response "+resp.Status), "archive", ref)
		return "", zerr.With(err, "status", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "conda-project-archive-*")
	if err != nil {
		return "", zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error())
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error()), "archive", ref)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error())
	}
	return tmp.Name(), nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func detectFormat(name string) format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return formatTarGz
	case strings.HasSuffix(lower, ".tar"):
		return formatTar
	case strings.HasSuffix(lower, ".zip"):
		return formatZip
	default:
		return formatUnknown
	}
}

// projectDir returns the single top-level directory of dest, or dest itself.
func projectDir(dest string) (string, error) {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error()), "directory", dest)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dest, entries[0].Name()), nil
	}
	return dest, nil
}

func extractTarFile(archivePath, dest string, gzipped bool) error {
	file, err := os.Open(archivePath) //nolint:gosec // path is the archive chosen by the user
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveFetchFailed, err.Error())
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file
	if gzipped {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			return zerr.Wrap(domain.ErrArchivePathEscape, err.Error())
		}
		if err != nil {
			return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		}
	}
}

func extractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		_ = zr.Close()
		return zerr.Wrap(domain.ErrArchivePathEscape, err.Error())
	}
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	defer func() { _ = zr.Close() }()

	for _, file := range zr.File {
		target, err := safeJoin(dest, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
			}
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
		}
		err = writeFile(target, rc, file.Mode())
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// safeJoin resolves name inside dest and rejects members that would land outside it.
func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", zerr.With(zerr.Wrap(domain.ErrArchivePathEscape, "absolute member path"), "member", name)
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(zerr.Wrap(domain.ErrArchivePathEscape, "refusing to extract"), "member", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	perm := mode.Perm() | 0o600
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // target is checked by safeJoin
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	if _, err := io.Copy(out, r); err != nil { //nolint:gosec // archives are trusted project sources
		_ = out.Close()
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	if err := out.Close(); err != nil {
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	return nil
}

func writeSymlink(dest, target, linkname string) error {
	resolved := linkname
	if !filepath.IsAbs(linkname) {
		resolved = filepath.Join(filepath.Dir(target), linkname)
	}
	rel, err := filepath.Rel(dest, resolved)
	if err != nil || filepath.IsAbs(linkname) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(zerr.Wrap(domain.ErrArchivePathEscape, "refusing to create symlink"), "member", linkname)
	}
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	if err := os.Symlink(linkname, target); err != nil {
		return zerr.Wrap(domain.ErrArchiveExtractFailed, err.Error())
	}
	return nil
}
