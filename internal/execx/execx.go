// Copyright 2026 The gosdk Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package execx runs external programs with a controlled environment and
// keyword-based failure detection on their combined output.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/qiniu/x/log"
)

// Cmd describes a single external program invocation.
type Cmd struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the caller's.
	Dir string

	// Env are variables set (or overridden) for the child process on top
	// of the ambient environment.
	Env map[string]string

	// RemoveEnv are variables removed from the ambient environment before
	// Env overrides apply.
	RemoveEnv []string

	// FailKeywords are case-sensitive substrings that mark the invocation
	// as failed when found in the combined output, even on exit status 0.
	// Some build scripts are known to exit zero despite failing.
	FailKeywords []string
}

// A Runner executes commands. The combined standard output and error is
// captured in full and returned even when err is non-nil.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (output string, err error)
}

// KeywordError reports a fail keyword found in the output of a process
// that otherwise looked successful or failed for another reason.
type KeywordError struct {
	Keyword string
	Output  string
}

func (e *KeywordError) Error() string {
	return fmt.Sprintf("output contains failure keyword %q", e.Keyword)
}

// ExitError reports a non-zero exit status together with the captured
// output.
type ExitError struct {
	Cmd    string
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

type runner struct{}

// New returns a Runner backed by os/exec.
func New() Runner {
	return runner{}
}

func (runner) Run(ctx context.Context, cmd Cmd) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = buildEnv(os.Environ(), cmd.Env, cmd.RemoveEnv)

	var buf bytes.Buffer
	c.Stdout = &buf
	c.Stderr = &buf

	log.Debugf("exec: %s %s", cmd.Name, strings.Join(cmd.Args, " "))
	runErr := c.Run()
	output := buf.String()

	if runErr != nil {
		return output, &ExitError{Cmd: cmd.Name, Output: output, Err: runErr}
	}
	if kw := matchKeyword(output, cmd.FailKeywords); kw != "" {
		return output, &KeywordError{Keyword: kw, Output: output}
	}
	return output, nil
}

// matchKeyword returns the first fail keyword contained in output, or "".
func matchKeyword(output string, keywords []string) string {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(output, kw) {
			return kw
		}
	}
	return ""
}

// buildEnv derives the child environment from base: removals first, then
// overrides. Overrides of a removed variable re-add it.
func buildEnv(base []string, overrides map[string]string, removals []string) []string {
	removed := make(map[string]bool, len(removals))
	for _, k := range removals {
		removed[k] = true
	}
	env := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		k, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if removed[k] {
			continue
		}
		if _, override := overrides[k]; override {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}
