// Package compat holds the compatibility record model shared by the table,
// results and update packages.
package compat

import "strings"

// Platform identifies a target operating system or runtime tracked
// independently in the compatibility table.
type Platform string

const (
	PlatformLinux       Platform = "linux"
	PlatformMac         Platform = "mac"
	PlatformWindows     Platform = "windows"
	PlatformRockyLinux8 Platform = "rockylinux8"
	PlatformUbuntu2004  Platform = "ubuntu20.04"
)

// Platforms is the closed platform set, in table column order.
var Platforms = []Platform{
	PlatformLinux,
	PlatformMac,
	PlatformWindows,
	PlatformRockyLinux8,
	PlatformUbuntu2004,
}

// ParsePlatform returns the platform named exactly by s, if it belongs to
// the set.
func ParsePlatform(s string) (Platform, bool) {
	name := Platform(s)
	for _, p := range Platforms {
		if p == name {
			return p, true
		}
	}
	return "", false
}

// Status is the outcome of a platform test run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// NormalizeStatus maps "pass" (any case) to StatusPass and everything else,
// including padded values such as " pass ", to StatusFail.
func NormalizeStatus(s string) Status {
	if strings.EqualFold(s, string(StatusPass)) {
		return StatusPass
	}
	return StatusFail
}

// Record is one table row: the proxy tag validated against an upstream
// release and the per-platform outcome.
type Record struct {
	// Tag is the claude-proxy build tag; empty when unknown.
	Tag string

	// Platforms holds statuses for the platforms that have one.
	Platforms map[Platform]Status
}

// Status returns the recorded status for p, if any.
func (r Record) Status(p Platform) (Status, bool) {
	s, ok := r.Platforms[p]
	return s, ok
}

// Records maps upstream release identifiers to their row.
type Records map[string]Record

// Results maps a platform to the statuses it reported, keyed by release.
type Results map[Platform]map[string]Status

// Lookup returns the status reported by p for release, if any.
func (r Results) Lookup(p Platform, release string) (Status, bool) {
	byRelease, ok := r[p]
	if !ok {
		return "", false
	}
	s, ok := byRelease[release]
	return s, ok
}

// Set records status for p and release, creating the platform entry as needed.
func (r Results) Set(p Platform, release string, status Status) {
	if r[p] == nil {
		r[p] = make(map[string]Status)
	}
	r[p][release] = status
}
