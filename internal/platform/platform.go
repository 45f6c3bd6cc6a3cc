// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform models the operating systems and CPU architectures a
// toolchain can be provisioned for, together with the naming and packaging
// conventions the Go distribution uses for each of them.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// OS is an operating system known to the Go distribution.
type OS string

const (
	Linux   OS = "linux"
	Darwin  OS = "darwin"
	Windows OS = "windows"
	FreeBSD OS = "freebsd"
)

// Arch is a CPU architecture known to the Go distribution.
type Arch string

const (
	AMD64 Arch = "amd64"
	ARM64 Arch = "arm64"
	I386  Arch = "386"
	ARM   Arch = "arm"
)

// archiveSuffix maps an OS to the packaging format of its prebuilt
// distribution archives.
var archiveSuffix = map[OS]string{
	Linux:   ".tar.gz",
	Darwin:  ".tar.gz",
	FreeBSD: ".tar.gz",
	Windows: ".zip",
}

// execSuffix maps an OS to the filename suffix of its executables.
var execSuffix = map[OS]string{
	Windows: ".exe",
}

// ArchiveSuffix returns the archive suffix of prebuilt distributions for o
// (".tar.gz" or ".zip").
func (o OS) ArchiveSuffix() string {
	return archiveSuffix[o]
}

// ExecSuffix returns the executable filename suffix for o ("" or ".exe").
func (o OS) ExecSuffix() string {
	return execSuffix[o]
}

func (o OS) known() bool {
	_, ok := archiveSuffix[o]
	return ok
}

var knownArchs = map[Arch]bool{
	AMD64: true,
	ARM64: true,
	I386:  true,
	ARM:   true,
}

// A Platform is an (OS, Arch) pair. Platforms are immutable values and
// compare equal by their fields.
type Platform struct {
	OS   OS
	Arch Arch
}

// Host returns the platform this process is running on.
func Host() Platform {
	return Platform{OS: OS(runtime.GOOS), Arch: Arch(runtime.GOARCH)}
}

func (p Platform) String() string {
	return string(p.OS) + "-" + string(p.Arch)
}

// DistName returns the name the Go download site uses for p,
// e.g. "linux-amd64" in "go1.20.3.linux-amd64.tar.gz".
func (p Platform) DistName() string {
	return p.String()
}

// PkgDir returns the pkg subdirectory name for p, e.g. "linux_amd64".
func (p Platform) PkgDir() string {
	return string(p.OS) + "_" + string(p.Arch)
}

// Parse parses a "os-arch" spec like "linux-amd64".
func Parse(s string) (Platform, error) {
	osPart, archPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Platform{}, fmt.Errorf("invalid platform %q: expected <os>-<arch>", s)
	}
	p := Platform{OS: OS(osPart), Arch: Arch(archPart)}
	if !p.OS.known() {
		return Platform{}, fmt.Errorf("invalid platform %q: unknown operating system %q", s, osPart)
	}
	if !knownArchs[p.Arch] {
		return Platform{}, fmt.Errorf("invalid platform %q: unknown architecture %q", s, archPart)
	}
	return p, nil
}

// ParseList parses a comma-separated list of platform specs. Empty items
// are skipped; duplicates are kept in first-seen position only.
func ParseList(s string) ([]Platform, error) {
	var out []Platform
	seen := make(map[Platform]bool)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		p, err := Parse(item)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
