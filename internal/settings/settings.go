// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings holds the typed configuration of the toolchain
// provisioner and resolves it from layered defaults, environment variables
// and explicit overrides.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/buildforge/gosdk/internal/platform"
)

// ConfigError reports invalid or missing required configuration. It is
// always detected before any provisioning I/O happens.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Setting, e.Reason)
}

// Toolchain configures which toolchain to provision and where.
type Toolchain struct {
	// GoVersion is the semantic version of the toolchain to provision,
	// e.g. "1.20.3" (no "go" prefix).
	GoVersion string `yaml:"goVersion"`

	// Root is the toolchain installation directory. Empty means
	// <cacheRoot>/sdk/<goVersion>.
	Root string `yaml:"root"`

	// BootstrapRoot is the installation directory of the bootstrap
	// toolchain used to build the primary one from source. Empty means:
	// $GOROOT if it holds a runnable go binary, else <cacheRoot>/sdk/bootstrap.
	BootstrapRoot string `yaml:"bootstrapRoot"`

	// ForceRebuild rebuilds per-platform toolchains even when their build
	// marker exists.
	ForceRebuild bool `yaml:"forceRebuild"`

	// CgoEnabled controls CGO_ENABLED for toolchain builds.
	CgoEnabled bool `yaml:"cgoEnabled"`

	// DownloadBaseURL is the URL prefix of distribution downloads. The
	// version and packaging suffix are appended to it, so the default
	// "https://go.dev/dl/go" yields e.g.
	// "https://go.dev/dl/go1.20.3.src.tar.gz".
	DownloadBaseURL string `yaml:"downloadBaseURL"`
}

// Build configures what is being built and where intermediate state lives.
type Build struct {
	// PackageName is the import path of the package the host pipeline
	// builds. Required.
	PackageName string `yaml:"packageName"`

	// Platforms is a comma-separated list of target platforms,
	// e.g. "linux-amd64,windows-amd64". Empty means the host platform.
	Platforms string `yaml:"platforms"`

	// CacheRoot is the directory holding downloaded and built toolchains.
	// Empty means <user cache dir>/gosdk.
	CacheRoot string `yaml:"cacheRoot"`

	// UseTemporaryWorkspace requests a throwaway GOPATH-style workspace
	// under the cache root instead of the ambient one.
	UseTemporaryWorkspace bool `yaml:"useTemporaryWorkspace"`
}

// Settings is the complete provisioner configuration. The exported derived
// fields are filled by Validate and are empty before it runs.
type Settings struct {
	Toolchain Toolchain `yaml:"toolchain"`
	Build     Build     `yaml:"build"`

	// Derived by Validate.
	Host          platform.Platform   `yaml:"-"`
	TargetList    []platform.Platform `yaml:"-"`
	ExecSuffix    string              `yaml:"-"`
	WorkspaceRoot string              `yaml:"-"`

	validated bool
}

// Default returns the baseline settings.
func Default() *Settings {
	return &Settings{
		Toolchain: Toolchain{
			GoVersion:       "1.24.0",
			DownloadBaseURL: "https://go.dev/dl/go",
		},
	}
}

// LoadFile overlays settings from a yaml file on top of s.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}

// Environment variables recognized by FromEnv.
const (
	EnvGoVersion       = "GOSDK_GO_VERSION"
	EnvCacheRoot       = "GOSDK_CACHE_ROOT"
	EnvPlatforms       = "GOSDK_PLATFORMS"
	EnvForceRebuild    = "GOSDK_FORCE_REBUILD"
	EnvDownloadBaseURL = "GOSDK_DOWNLOAD_BASE_URL"
)

// FromEnv overlays GOSDK_* environment variables on top of s.
func (s *Settings) FromEnv() {
	if v := os.Getenv(EnvGoVersion); v != "" {
		s.Toolchain.GoVersion = v
	}
	if v := os.Getenv(EnvCacheRoot); v != "" {
		s.Build.CacheRoot = v
	}
	if v := os.Getenv(EnvPlatforms); v != "" {
		s.Build.Platforms = v
	}
	if v := os.Getenv(EnvForceRebuild); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Toolchain.ForceRebuild = b
		}
	}
	if v := os.Getenv(EnvDownloadBaseURL); v != "" {
		s.Toolchain.DownloadBaseURL = v
	}
}

// Validate checks required settings and derives host platform, target list
// and resolved install roots. It must run to completion before any
// provisioning step; all paths it writes back are absolute.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Build.PackageName) == "" {
		return &ConfigError{Setting: "build.packageName", Reason: "no package name configured"}
	}
	version := strings.TrimSpace(s.Toolchain.GoVersion)
	if version == "" {
		return &ConfigError{Setting: "toolchain.goVersion", Reason: "no toolchain version configured"}
	}
	if !semver.IsValid("v" + version) {
		return &ConfigError{Setting: "toolchain.goVersion", Reason: fmt.Sprintf("%q is not a valid semantic version", version)}
	}
	s.Toolchain.GoVersion = version
	if s.Toolchain.DownloadBaseURL == "" {
		return &ConfigError{Setting: "toolchain.downloadBaseURL", Reason: "no download base URL configured"}
	}

	s.Host = platform.Host()
	s.ExecSuffix = s.Host.OS.ExecSuffix()

	spec := s.Build.Platforms
	if strings.TrimSpace(spec) == "" {
		spec = s.Host.String()
	}
	targets, err := platform.ParseList(spec)
	if err != nil {
		return &ConfigError{Setting: "build.platforms", Reason: err.Error()}
	}
	if len(targets) == 0 {
		return &ConfigError{Setting: "build.platforms", Reason: "there are no platforms specified"}
	}
	s.TargetList = targets

	if err := s.resolveCacheRoot(); err != nil {
		return err
	}
	if err := s.resolveToolchainRoot(); err != nil {
		return err
	}
	if err := s.resolveBootstrapRoot(); err != nil {
		return err
	}
	if s.Build.UseTemporaryWorkspace {
		s.WorkspaceRoot = filepath.Join(s.Build.CacheRoot, "tmp", "gopath")
	}

	s.validated = true
	return nil
}

// EnsureValid reports whether Validate has completed on s. Provisioning
// entry points call it so that configuration problems surface before I/O.
func (s *Settings) EnsureValid() error {
	if !s.validated {
		return &ConfigError{Setting: "settings", Reason: "settings have not been validated"}
	}
	return nil
}

// GoBinary returns the path of the go binary inside root.
func (s *Settings) GoBinary(root string) string {
	return filepath.Join(root, "bin", "go"+s.ExecSuffix)
}

func (s *Settings) resolveCacheRoot() error {
	if s.Build.CacheRoot == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			return &ConfigError{Setting: "build.cacheRoot", Reason: err.Error()}
		}
		s.Build.CacheRoot = filepath.Join(userCacheDir, "gosdk")
	}
	abs, err := filepath.Abs(s.Build.CacheRoot)
	if err != nil {
		return &ConfigError{Setting: "build.cacheRoot", Reason: err.Error()}
	}
	s.Build.CacheRoot = abs
	return nil
}

func (s *Settings) resolveToolchainRoot() error {
	if s.Toolchain.Root == "" {
		s.Toolchain.Root = filepath.Join(s.Build.CacheRoot, "sdk", s.Toolchain.GoVersion)
	}
	abs, err := filepath.Abs(s.Toolchain.Root)
	if err != nil {
		return &ConfigError{Setting: "toolchain.root", Reason: err.Error()}
	}
	s.Toolchain.Root = abs
	return nil
}

func (s *Settings) resolveBootstrapRoot() error {
	if s.Toolchain.BootstrapRoot == "" {
		if goroot := os.Getenv("GOROOT"); goroot != "" {
			if isExecutable(filepath.Join(goroot, "bin", "go"+s.ExecSuffix)) {
				s.Toolchain.BootstrapRoot = goroot
			}
		}
	}
	if s.Toolchain.BootstrapRoot == "" {
		s.Toolchain.BootstrapRoot = filepath.Join(s.Build.CacheRoot, "sdk", "bootstrap")
	}
	abs, err := filepath.Abs(s.Toolchain.BootstrapRoot)
	if err != nil {
		return &ConfigError{Setting: "toolchain.bootstrapRoot", Reason: err.Error()}
	}
	s.Toolchain.BootstrapRoot = abs
	return nil
}

// isExecutable reports whether path names a regular file this process could
// execute. On Windows existence is all that can be checked.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}
