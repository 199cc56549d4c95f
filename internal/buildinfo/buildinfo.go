// Package buildinfo exposes version metadata injected at link time.
package buildinfo

import (
	"fmt"
	"io"
)

// Set via -ldflags "-X github.com/profilehub/profilehub/internal/buildinfo.Version=..."
var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
