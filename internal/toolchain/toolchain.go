// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toolchain provisions a Go toolchain: it acquires a bootstrap
// compiler, downloads versioned sources, builds the toolchain for the host
// and every configured target platform, and compiles the helper binaries
// later build phases depend on. Every phase is idempotent and decides from
// on-disk state whether it has work to do.
package toolchain

import (
	"context"

	"github.com/buildforge/gosdk/internal/archive"
	"github.com/buildforge/gosdk/internal/execx"
	"github.com/buildforge/gosdk/internal/settings"
)

// Downloader fetches an archive by URL and extracts it into a directory.
type Downloader interface {
	Download(ctx context.Context, url, dir string) error
}

// Provisioner orchestrates the toolchain provisioning phases.
type Provisioner struct {
	settings *settings.Settings
	runner   execx.Runner
	fetch    Downloader
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithRunner sets a custom process runner.
func WithRunner(r execx.Runner) Option {
	return func(p *Provisioner) {
		p.runner = r
	}
}

// WithDownloader sets a custom archive downloader.
func WithDownloader(d Downloader) Option {
	return func(p *Provisioner) {
		p.fetch = d
	}
}

// New creates a Provisioner for validated settings.
func New(s *settings.Settings, opts ...Option) *Provisioner {
	p := &Provisioner{
		settings: s,
		runner:   execx.New(),
		fetch:    archive.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PhaseResult records whether a single phase performed work.
type PhaseResult struct {
	Name    string
	DidWork bool
}

// Report lists the executed phases in order.
type Report struct {
	Phases []PhaseResult
}

// UpToDate reports whether no phase performed any work.
func (r Report) UpToDate() bool {
	for _, phase := range r.Phases {
		if phase.DidWork {
			return false
		}
	}
	return len(r.Phases) > 0
}

// Phase names, in execution order.
const (
	PhaseBootstrap = "bootstrap"
	PhaseSources   = "sources"
	PhaseHost      = "host build"
	PhaseTargets   = "target builds"
	PhaseTools     = "helper tools"
)

// Run executes the five provisioning phases in their fixed order. The first
// failing phase aborts the run; the returned report covers the phases that
// completed. Re-running after a failure retries the failed phase from
// scratch.
func (p *Provisioner) Run(ctx context.Context) (Report, error) {
	var report Report
	if err := p.settings.EnsureValid(); err != nil {
		return report, err
	}
	phases := []struct {
		name string
		fn   func(context.Context) (bool, error)
	}{
		{PhaseBootstrap, p.ensureBootstrap},
		{PhaseSources, p.ensureSources},
		{PhaseHost, p.buildHost},
		{PhaseTargets, p.buildTargets},
		{PhaseTools, p.buildTools},
	}
	for _, phase := range phases {
		didWork, err := phase.fn(ctx)
		if err != nil {
			return report, err
		}
		report.Phases = append(report.Phases, PhaseResult{Name: phase.name, DidWork: didWork})
	}
	return report, nil
}
