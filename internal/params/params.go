// Package params collects and validates the generation parameters before
// the pipeline runs. Parameters arrive from flags, from a blueprint file,
// or from interactive prompting; by the time a Params value leaves this
// package it is fully validated.
package params

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// Packaging types supported by the backend build.
const (
	PackagingJar = "jar"
	PackagingWar = "war"
)

var (
	artifactPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	groupPattern    = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)+$`)
)

// Params holds everything the generation pipeline needs.
type Params struct {
	GroupID          string // reverse-domain group, e.g. "com.example"
	ArtifactID       string // project name; backend becomes "<ArtifactID>-backend"
	BootVersion      string // Spring Boot version, semver
	JavaVersion      string // e.g. "17"
	Packaging        string // "jar" or "war"
	FrontendTemplate string // Vite template name, e.g. "vue" or "react"
}

// BackendName returns the backend module directory name.
func (p *Params) BackendName() string { return p.ArtifactID + "-backend" }

// FrontendName returns the frontend module directory name.
func (p *Params) FrontendName() string { return p.ArtifactID + "-frontend" }

// AssetDir returns the compiled frontend asset path relative to the
// backend directory, as referenced by the merged build descriptor.
func (p *Params) AssetDir() string { return "../" + p.FrontendName() + "/dist" }

// Validate checks every field and returns the first violation found.
func (p *Params) Validate() error {
	if !artifactPattern.MatchString(p.ArtifactID) {
		return fmt.Errorf("invalid artifact id %q: must match pattern [a-z0-9][a-z0-9-]*", p.ArtifactID)
	}
	if !groupPattern.MatchString(p.GroupID) {
		return fmt.Errorf("invalid group id %q: must be a dotted package name like com.example", p.GroupID)
	}
	if _, err := semver.NewVersion(p.BootVersion); err != nil {
		return fmt.Errorf("invalid boot version %q: %w", p.BootVersion, err)
	}
	if n, err := strconv.Atoi(p.JavaVersion); err != nil || n < 8 {
		return fmt.Errorf("invalid java version %q: must be a number >= 8", p.JavaVersion)
	}
	if p.Packaging != PackagingJar && p.Packaging != PackagingWar {
		return fmt.Errorf("invalid packaging %q: must be %q or %q", p.Packaging, PackagingJar, PackagingWar)
	}
	if !artifactPattern.MatchString(p.FrontendTemplate) {
		return fmt.Errorf("invalid frontend template %q", p.FrontendTemplate)
	}
	return nil
}
