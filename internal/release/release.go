// Package release identifies this tool's own release. The pair is baked
// into helper-tool info files so that a release bump invalidates previously
// built helpers.
package release

// Group is the identity namespace recorded next to built helper tools.
const Group = "github.com/buildforge/gosdk"

// Version is this tool's release version. Overridable at link time:
//
//	go build -ldflags "-X github.com/buildforge/gosdk/internal/release.Version=1.2.0"
var Version = "0.9.0"
