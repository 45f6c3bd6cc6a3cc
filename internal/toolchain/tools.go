// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"context"
	"embed"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/buildforge/gosdk/internal/execx"
	"github.com/buildforge/gosdk/internal/release"
)

//go:embed assets
var toolAssets embed.FS

// helperTools are the auxiliary binaries compiled with the host toolchain
// for later build phases.
var helperTools = []string{"importsextractor"}

// buildTools ensures every helper tool is built and current for the running
// release.
func (p *Provisioner) buildTools(ctx context.Context) (bool, error) {
	didWork := false
	for _, name := range helperTools {
		built, err := p.buildToolIfRequired(ctx, name)
		if err != nil {
			return didWork, err
		}
		if built {
			didWork = true
		}
	}
	return didWork, nil
}

// buildToolIfRequired compiles the named helper tool into the toolchain's
// bin directory unless the existing binary's info file already records the
// current release. The temporary source file is removed whether or not the
// build succeeds.
func (p *Provisioner) buildToolIfRequired(ctx context.Context, name string) (bool, error) {
	s := p.settings
	binDir := filepath.Join(s.Toolchain.Root, "bin")
	toolBinary := filepath.Join(binDir, name+s.ExecSuffix)
	infoFile := filepath.Join(binDir, name+".info")
	info := name + ":" + release.Group + ":" + release.Version

	if _, err := os.Stat(toolBinary); err == nil {
		if found, err := os.ReadFile(infoFile); err == nil && string(found) == info {
			log.Debugf("tool %s is up to date", name)
			return false, nil
		}
	}

	source, err := toolAssets.ReadFile("assets/" + name + ".go.txt")
	if err != nil {
		return false, &ResourceMissingError{Name: name}
	}

	log.Infof("building tool %s", name)
	tmp, err := os.CreateTemp("", name+"-*.go")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(source); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return false, err
	}
	out, err := p.runner.Run(ctx, execx.Cmd{
		Name: s.GoBinary(s.Toolchain.Root),
		Args: []string{"build", "-o", toolBinary, tmp.Name()},
		Env: map[string]string{
			"GOROOT":           s.Toolchain.Root,
			"GOROOT_BOOTSTRAP": s.Toolchain.BootstrapRoot,
		},
		RemoveEnv: []string{"GOPATH"},
	})
	if err != nil {
		return false, &BuildError{Subject: name, Output: out, Err: err}
	}

	if err := os.WriteFile(infoFile, []byte(info), 0o644); err != nil {
		return false, err
	}
	log.Infof("tool %s built", name)
	return true, nil
}
