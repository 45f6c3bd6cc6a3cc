// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive fetches a resource by URL and extracts it into a target
// directory. The extraction format is chosen by inspecting the URL suffix;
// gzip-compressed tarballs and zip archives are supported.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qiniu/x/log"
)

// Fetcher downloads and extracts distribution archives.
type Fetcher struct {
	client *http.Client
}

// New returns a ready-to-use Fetcher. The header timeout bounds connection
// setup; the body read is bounded by the caller's context.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 60 * time.Second,
			},
		},
	}
}

// Download fetches url and extracts its contents into dir, creating dir if
// needed. A conventional leading "go/" path component, as shipped in Go
// release archives, is stripped so the tree lands directly in dir.
func (f *Fetcher) Download(ctx context.Context, url, dir string) error {
	kind, err := formatOf(url)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	log.Infof("downloading %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	switch kind {
	case formatTarGz:
		return extractTarGz(resp.Body, dir)
	case formatZip:
		return extractZip(resp.Body, resp.ContentLength, dir)
	}
	panic("unreachable")
}

type format int

const (
	formatTarGz format = iota
	formatZip
)

func formatOf(url string) (format, error) {
	switch {
	case strings.HasSuffix(url, ".tar.gz"), strings.HasSuffix(url, ".tgz"):
		return formatTarGz, nil
	case strings.HasSuffix(url, ".zip"):
		return formatZip, nil
	}
	return 0, fmt.Errorf("unsupported archive format: %s", url)
}

func extractTarGz(r io.Reader, dir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar stream: %w", err)
		}
		target, ok, err := entryPath(dir, hdr.Name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode).Perm()|0o700); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

// extractZip spools the body to a temporary file first; zip needs random
// access.
func extractZip(r io.Reader, size int64, dir string) error {
	tmp, err := os.CreateTemp("", "gosdk-archive-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return fmt.Errorf("spool zip archive: %w", err)
	}
	if size >= 0 && n != size {
		return fmt.Errorf("spool zip archive: got %d bytes, want %d", n, size)
	}

	zr, err := zip.NewReader(tmp, n)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	for _, file := range zr.File {
		target, ok, err := entryPath(dir, file.Name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, file.Mode().Perm()|0o700); err != nil {
				return err
			}
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, file.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// entryPath resolves an archive entry name below dir, stripping the leading
// "go/" component and rejecting entries that would escape dir. ok is false
// for entries to skip.
func entryPath(dir, name string) (target string, ok bool, err error) {
	name = strings.TrimPrefix(name, "./")
	if name == "go" || name == "go/" {
		return "", false, nil
	}
	name = strings.TrimPrefix(name, "go/")
	if name == "" {
		return "", false, nil
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false, fmt.Errorf("archive entry escapes target directory: %s", name)
	}
	return filepath.Join(dir, filepath.FromSlash(name)), true, nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
