// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/qiniu/x/log"

	"github.com/buildforge/gosdk/internal/execx"
	"github.com/buildforge/gosdk/internal/platform"
)

// markerName is the zero-byte sentinel signaling a completed per-platform
// build, at <root>/pkg/<os>_<arch>/.built.
const markerName = ".built"

// buildFailKeywords mark a build-script run as failed even on exit status
// 0; make.bash is known to sometimes exit zero despite failing.
var buildFailKeywords = []string{
	"ERROR: ",
	"($GOPATH not set)",
	"Access denied",
}

// buildHost makes sure the toolchain is built and runnable for the host
// platform and that it reports exactly the requested version.
func (p *Provisioner) buildHost(ctx context.Context) (bool, error) {
	tc := &p.settings.Toolchain
	version := p.binaryVersion(ctx, tc.Root)
	didWork := false
	if version == "" {
		if _, err := p.buildPlatform(ctx, p.settings.Host, true); err != nil {
			return false, err
		}
		version = p.binaryVersion(ctx, tc.Root)
		didWork = true
	}
	if version != tc.GoVersion {
		return didWork, &VersionMismatchError{Path: tc.Root, Expected: tc.GoVersion, Actual: version}
	}
	return didWork, nil
}

// buildTargets cross-builds the toolchain for every configured target
// platform, skipping per-platform builds whose marker exists unless a
// rebuild is forced.
func (p *Provisioner) buildTargets(ctx context.Context) (bool, error) {
	didWork := false
	for _, target := range p.settings.TargetList {
		built, err := p.buildPlatform(ctx, target, p.settings.Toolchain.ForceRebuild)
		if err != nil {
			return didWork, err
		}
		if built {
			didWork = true
		}
	}
	return didWork, nil
}

// buildPlatform runs the native build script for target unless its build
// marker already exists (and force is unset). The marker check, the build
// and the marker write happen under a per-platform file lock so two
// builders cannot race on the same directory.
func (p *Provisioner) buildPlatform(ctx context.Context, target platform.Platform, force bool) (bool, error) {
	tc := &p.settings.Toolchain
	pkgDir := filepath.Join(tc.Root, "pkg", target.PkgDir())
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		return false, err
	}

	lock := flock.New(filepath.Join(pkgDir, ".lock"))
	if err := lock.Lock(); err != nil {
		return false, err
	}
	defer lock.Unlock()

	marker := filepath.Join(pkgDir, markerName)
	if !force {
		if _, err := os.Stat(marker); err == nil {
			log.Debugf("go toolchain for %s is already built", target)
			return false, nil
		}
	}

	script := "make.bash"
	if p.settings.Host.OS == platform.Windows {
		script = "make.bat"
	}
	srcDir := filepath.Join(tc.Root, "src")
	cgo := "0"
	if tc.CgoEnabled {
		cgo = "1"
	}

	log.Infof("building go toolchain for %s", target)
	out, err := p.runner.Run(ctx, execx.Cmd{
		Name: filepath.Join(srcDir, script),
		Args: []string{"--no-clean"},
		Dir:  srcDir,
		Env: map[string]string{
			"GOROOT":           tc.Root,
			"GOROOT_BOOTSTRAP": tc.BootstrapRoot,
			"GOOS":             string(target.OS),
			"GOARCH":           string(target.Arch),
			"CGO_ENABLED":      cgo,
		},
		RemoveEnv:    []string{"GOPATH"},
		FailKeywords: buildFailKeywords,
	})
	if err != nil {
		return false, &BuildError{Subject: target.String(), Output: out, Err: err}
	}

	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return false, err
	}
	log.Infof("go toolchain for %s built", target)
	return true, nil
}
