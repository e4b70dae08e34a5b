// Package version reports the shell's build version.
//
// Values are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/gollama/version.Version=0.2.0 \
//	  -X github.com/kbukum/gollama/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Unstamped builds fall back to the VCS settings recorded by the Go
// toolchain and, for the product version, to the embedded manifest.
package version
