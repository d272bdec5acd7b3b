// Package version holds build metadata, set with -ldflags at build time:
//
//	go build -ldflags "-X github.com/keshon/suggestions/internal/version.Version=v3.1.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	AppName        = "Suggestions"
	AppDescription = "Suggestions bot command core"
	Copyright      = "© 2022 Anthony Collier"
)

var (
	Version   = "dev"
	BuildDate = ""
	GoVersion = runtime.Version()
)

// String returns a one-line description of the build.
func String() string {
	s := fmt.Sprintf("%s %s (Go %s)", AppName, Version, strings.TrimPrefix(GoVersion, "go"))
	if BuildDate != "" {
		s += ", built " + BuildDate
	}
	return s
}
