// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"context"

	"github.com/qiniu/x/log"
)

// ensureBootstrap makes sure a working bootstrap compiler exists at the
// bootstrap root, downloading a prebuilt distribution for the host platform
// when none is found. The installed bootstrap must report exactly the
// requested toolchain version.
func (p *Provisioner) ensureBootstrap(ctx context.Context) (bool, error) {
	tc := &p.settings.Toolchain
	if version := p.binaryVersion(ctx, tc.BootstrapRoot); version != "" {
		log.Debugf("found go bootstrap version %s", version)
		return false, nil
	}

	host := p.settings.Host
	url := tc.DownloadBaseURL + tc.GoVersion + "." + host.DistName() + host.OS.ArchiveSuffix()
	log.Infof("no go bootstrap found, downloading %s to %s", url, tc.BootstrapRoot)
	if err := p.fetch.Download(ctx, url, tc.BootstrapRoot); err != nil {
		return false, &AcquisitionError{URL: url, Dir: tc.BootstrapRoot, Err: err}
	}

	version := p.binaryVersion(ctx, tc.BootstrapRoot)
	if version != tc.GoVersion {
		return false, &VersionMismatchError{Path: tc.BootstrapRoot, Expected: tc.GoVersion, Actual: version}
	}
	log.Infof("go bootstrap toolchain (%s) installed to %s", version, tc.BootstrapRoot)
	return true, nil
}

// ensureSources makes sure a source tree of the exact requested version is
// present at the toolchain root. When the VERSION marker already matches,
// no network access happens.
func (p *Provisioner) ensureSources(ctx context.Context) (bool, error) {
	tc := &p.settings.Toolchain
	if version := readVersionFile(tc.Root); version == tc.GoVersion {
		log.Debugf("found go sources version %s", version)
		return false, nil
	}

	url := tc.DownloadBaseURL + tc.GoVersion + ".src.tar.gz"
	log.Infof("no go sources of version %s found, downloading %s to %s", tc.GoVersion, url, tc.Root)
	if err := p.fetch.Download(ctx, url, tc.Root); err != nil {
		return false, &AcquisitionError{URL: url, Dir: tc.Root, Err: err}
	}

	version := readVersionFile(tc.Root)
	if version != tc.GoVersion {
		return false, &VersionMismatchError{Path: tc.Root, Expected: tc.GoVersion, Actual: version}
	}
	log.Infof("go toolchain sources (%s) downloaded to %s", version, tc.Root)
	return true, nil
}
