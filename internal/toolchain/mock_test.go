// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/buildforge/gosdk/internal/execx"
	"github.com/buildforge/gosdk/internal/settings"
)

const testVersion = "1.20.3"

// fakeRunner records every invocation and answers through handle. Without a
// handle every command succeeds with empty output.
type fakeRunner struct {
	calls  []execx.Cmd
	handle func(cmd execx.Cmd) (string, error)
}

func (r *fakeRunner) Run(ctx context.Context, cmd execx.Cmd) (string, error) {
	r.calls = append(r.calls, cmd)
	if r.handle != nil {
		return r.handle(cmd)
	}
	return "", nil
}

// named returns the recorded invocations whose binary base name matches.
func (r *fakeRunner) named(base string) []execx.Cmd {
	var out []execx.Cmd
	for _, c := range r.calls {
		if filepath.Base(c.Name) == base {
			out = append(out, c)
		}
	}
	return out
}

// fakeDownloader records requested URLs and answers through handle.
type fakeDownloader struct {
	urls   []string
	handle func(url, dir string) error
}

func (d *fakeDownloader) Download(ctx context.Context, url, dir string) error {
	d.urls = append(d.urls, url)
	if d.handle != nil {
		return d.handle(url, dir)
	}
	return nil
}

// testSettings returns validated settings rooted in a temp dir, targeting
// the host platform only.
func testSettings(t *testing.T) *settings.Settings {
	t.Helper()
	t.Setenv("GOROOT", "")
	s := settings.Default()
	s.Toolchain.GoVersion = testVersion
	s.Toolchain.DownloadBaseURL = "https://dl.example/go"
	s.Build.PackageName = "example.com/demo"
	s.Build.CacheRoot = t.TempDir()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return s
}

// goVersionOutput is what a runnable go binary of testVersion reports.
func goVersionOutput(s *settings.Settings) string {
	return "go version go" + testVersion + " " + string(s.Host.OS) + "/" + string(s.Host.Arch)
}

// versionReporter answers "go version" queries for every root whose go
// binary exists on disk, and fails everything else.
func versionReporter(t *testing.T, s *settings.Settings) func(cmd execx.Cmd) (string, error) {
	t.Helper()
	return func(cmd execx.Cmd) (string, error) {
		if len(cmd.Args) == 1 && cmd.Args[0] == "version" {
			return goVersionOutput(s), nil
		}
		t.Fatalf("unexpected invocation: %s %v", cmd.Name, cmd.Args)
		return "", nil
	}
}

// writeGoBinary materializes a fake go binary under root so version probes
// reach the runner.
func writeGoBinary(t *testing.T, s *settings.Settings, root string) {
	t.Helper()
	bin := s.GoBinary(root)
	if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

// writeVersionFile writes the VERSION source marker under root.
func writeVersionFile(t *testing.T, root, contents string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "VERSION"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeMarker writes the per-platform build marker for s's host platform.
func writeMarker(t *testing.T, s *settings.Settings) string {
	t.Helper()
	dir := filepath.Join(s.Toolchain.Root, "pkg", s.Host.PkgDir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	marker := filepath.Join(dir, markerName)
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	return marker
}

// writeTool materializes a helper tool binary and its info file.
func writeTool(t *testing.T, s *settings.Settings, name, info string) {
	t.Helper()
	binDir := filepath.Join(s.Toolchain.Root, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir, name+s.ExecSuffix), []byte("bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir, name+".info"), []byte(info), 0o644); err != nil {
		t.Fatal(err)
	}
}
