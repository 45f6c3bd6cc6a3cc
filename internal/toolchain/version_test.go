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
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "release", in: "go version go1.20.3 linux/amd64", want: "1.20.3"},
		{name: "windows", in: "go version go1.20.3 windows/amd64\r\n", want: "1.20.3"},
		{name: "garbage", in: "command not found", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "bare go word only", in: "go version", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseVersion(tt.in); got != tt.want {
				t.Errorf("parseVersion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadVersionFile(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{name: "plain", contents: "1.20.3\n", want: "1.20.3"},
		{name: "go prefixed", contents: "go1.20.3\n", want: "1.20.3"},
		{name: "trailing timestamp line", contents: "go1.21.0\ntime 2023-08-04T20:14:06Z\n", want: "1.21.0"},
		{name: "whitespace", contents: "  go1.20.3  \n", want: "1.20.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.WriteFile(filepath.Join(root, "VERSION"), []byte(tt.contents), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := readVersionFile(root); got != tt.want {
				t.Errorf("readVersionFile = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadVersionFileAbsent(t *testing.T) {
	if got := readVersionFile(t.TempDir()); got != "" {
		t.Errorf("readVersionFile on empty dir = %q, want %q", got, "")
	}
}

func TestBinaryVersionMissingBinary(t *testing.T) {
	s := testSettings(t)
	runner := &fakeRunner{}
	p := New(s, WithRunner(runner))
	if got := p.binaryVersion(context.Background(), s.Toolchain.Root); got != "" {
		t.Errorf("binaryVersion = %q, want empty for missing binary", got)
	}
	if len(runner.calls) != 0 {
		t.Errorf("%d processes invoked for a missing binary, want 0", len(runner.calls))
	}
}

func TestBinaryVersionUnrunnableBinary(t *testing.T) {
	s := testSettings(t)
	writeGoBinary(t, s, s.Toolchain.Root)
	runner := &fakeRunner{
		handle: func(cmd execx.Cmd) (string, error) {
			return "", &execx.ExitError{Cmd: cmd.Name, Err: os.ErrPermission}
		},
	}
	p := New(s, WithRunner(runner))
	if got := p.binaryVersion(context.Background(), s.Toolchain.Root); got != "" {
		t.Errorf("binaryVersion = %q, want empty for unrunnable binary", got)
	}
}
