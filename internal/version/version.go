// Package version holds the build version, overridable with
// -ldflags "-X pseudofinder/internal/version.Version=...".
package version

var Version = "0.7.0"
