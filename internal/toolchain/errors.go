// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import "fmt"

// VersionMismatchError reports an installed artifact whose self-reported
// version differs from the requested one. Actual is empty when no usable
// installation was found at all.
type VersionMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *VersionMismatchError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "none"
	}
	return fmt.Sprintf("%s: expected toolchain version %s but found %s", e.Path, e.Expected, actual)
}

// AcquisitionError reports a failed download or extraction.
type AcquisitionError struct {
	URL string
	Dir string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("could not download %s to %s: %v", e.URL, e.Dir, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// BuildError reports a failed build invocation, with the captured combined
// output for context.
type BuildError struct {
	Subject string // platform or tool name
	Output  string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build of %s failed: %v", e.Subject, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ResourceMissingError reports an embedded helper-tool source that cannot
// be located.
type ResourceMissingError struct {
	Name string
}

func (e *ResourceMissingError) Error() string {
	return fmt.Sprintf("no embedded source for tool %s", e.Name)
}
