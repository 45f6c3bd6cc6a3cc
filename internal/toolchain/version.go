// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/buildforge/gosdk/internal/execx"
)

// binaryVersion invokes the go binary under root with "version" and returns
// the parsed version string, e.g. "1.20.3". It returns "" when the binary is
// missing, not runnable, or its output is unparsable.
func (p *Provisioner) binaryVersion(ctx context.Context, root string) string {
	bin := p.settings.GoBinary(root)
	if _, err := os.Stat(bin); err != nil {
		return ""
	}
	out, err := p.runner.Run(ctx, execx.Cmd{
		Name:      bin,
		Args:      []string{"version"},
		RemoveEnv: []string{"GOPATH"},
		Env:       map[string]string{"GOROOT": root},
	})
	if err != nil {
		return ""
	}
	return parseVersion(out)
}

// parseVersion extracts the version token from "go version go1.20.3
// linux/amd64" style output.
func parseVersion(out string) string {
	for _, field := range strings.Fields(out) {
		v := strings.TrimPrefix(field, "go")
		if v == field || v == "" {
			continue
		}
		if semver.IsValid("v" + v) {
			return v
		}
	}
	return ""
}

// readVersionFile returns the trimmed contents of the VERSION marker inside
// root, without its conventional "go" prefix. It returns "" when the file
// is absent or unreadable, meaning no usable sources are present. Newer
// distributions append a timestamp line; only the first line counts.
func readVersionFile(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "VERSION"))
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	return strings.TrimPrefix(strings.TrimSpace(line), "go")
}
