// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/buildforge/gosdk/internal/execx"
	"github.com/buildforge/gosdk/internal/release"
)

func currentToolInfo(name string) string {
	return name + ":" + release.Group + ":" + release.Version
}

func TestBuildToolSkipsWhenCurrent(t *testing.T) {
	s := testSettings(t)
	writeTool(t, s, "importsextractor", currentToolInfo("importsextractor"))
	runner := &fakeRunner{}

	p := New(s, WithRunner(runner))
	built, err := p.buildToolIfRequired(context.Background(), "importsextractor")
	if err != nil {
		t.Fatalf("buildToolIfRequired failed: %v", err)
	}
	if built {
		t.Error("tool rebuilt despite current info file")
	}
	if len(runner.calls) != 0 {
		t.Errorf("%d processes invoked, want 0", len(runner.calls))
	}
}

func TestBuildToolRebuildsOnStaleInfo(t *testing.T) {
	// Changing any of the three info fields must trigger a rebuild.
	stale := []string{
		"other:" + release.Group + ":" + release.Version,
		"importsextractor:other.example/group:" + release.Version,
		"importsextractor:" + release.Group + ":0.0.1",
	}
	for _, info := range stale {
		t.Run(info, func(t *testing.T) {
			s := testSettings(t)
			writeTool(t, s, "importsextractor", info)
			runner := &fakeRunner{}

			p := New(s, WithRunner(runner))
			built, err := p.buildToolIfRequired(context.Background(), "importsextractor")
			if err != nil {
				t.Fatalf("buildToolIfRequired failed: %v", err)
			}
			if !built {
				t.Error("stale tool not rebuilt")
			}
		})
	}
}

func TestBuildToolMissingSource(t *testing.T) {
	s := testSettings(t)
	p := New(s, WithRunner(&fakeRunner{}))
	_, err := p.buildToolIfRequired(context.Background(), "unknowntool")
	var missing *ResourceMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *ResourceMissingError", err)
	}
	if missing.Name != "unknowntool" {
		t.Errorf("Name = %q, want %q", missing.Name, "unknowntool")
	}
}

func TestBuildToolInvocation(t *testing.T) {
	s := testSettings(t)
	var sourceFile string
	runner := &fakeRunner{
		handle: func(cmd execx.Cmd) (string, error) {
			if len(cmd.Args) != 3+1 || cmd.Args[0] != "build" || cmd.Args[1] != "-o" {
				t.Fatalf("unexpected build invocation: %v", cmd.Args)
			}
			sourceFile = cmd.Args[3]
			if _, err := os.Stat(sourceFile); err != nil {
				t.Errorf("temp source missing during build: %v", err)
			}
			return "", nil
		},
	}

	p := New(s, WithRunner(runner))
	built, err := p.buildToolIfRequired(context.Background(), "importsextractor")
	if err != nil {
		t.Fatalf("buildToolIfRequired failed: %v", err)
	}
	if !built {
		t.Error("fresh tool build reported no work")
	}
	if sourceFile == "" {
		t.Fatal("build was never invoked")
	}
	if _, err := os.Stat(sourceFile); !os.IsNotExist(err) {
		t.Errorf("temp source %s not cleaned up after success", sourceFile)
	}
}

// TestBuildToolCleanupOnFailure forces the build invocation to fail and
// checks the temporary source file is removed anyway.
func TestBuildToolCleanupOnFailure(t *testing.T) {
	s := testSettings(t)
	var sourceFile string
	runner := &fakeRunner{
		handle: func(cmd execx.Cmd) (string, error) {
			sourceFile = cmd.Args[3]
			return "go: cannot compile", errors.New("exit status 2")
		},
	}

	p := New(s, WithRunner(runner))
	_, err := p.buildToolIfRequired(context.Background(), "importsextractor")
	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("error = %v, want *BuildError", err)
	}
	if sourceFile == "" {
		t.Fatal("build was never invoked")
	}
	if _, err := os.Stat(sourceFile); !os.IsNotExist(err) {
		t.Errorf("temp source %s not cleaned up after failure", sourceFile)
	}
}
