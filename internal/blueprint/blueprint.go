package blueprint

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/bootstitch-labs/bootstitch/internal/params"
)

// blueprint mirrors the YAML document; empty fields fall back to the
// caller's seed defaults.
type blueprint struct {
	GroupID          string `yaml:"group-id"`
	ArtifactID       string `yaml:"artifact-id"`
	BootVersion      string `yaml:"boot-version"`
	JavaVersion      string `yaml:"java-version"`
	Packaging        string `yaml:"packaging"`
	FrontendTemplate string `yaml:"frontend-template"`
}

// Load reads, schema-validates, and parses a blueprint file, overlaying
// its fields on seed. The returned Params is fully validated.
func Load(path string, seed params.Params) (*params.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating blueprint %s: %w", path, err)
	}
	if !result.Valid {
		var msgs []string
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			msgs = append(msgs, msg)
		}
		return nil, fmt.Errorf("blueprint %s is invalid:\n  %s", path, strings.Join(msgs, "\n  "))
	}

	var bp blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("parsing blueprint %s: %w", path, err)
	}

	p := seed
	overlay(&p.GroupID, bp.GroupID)
	overlay(&p.ArtifactID, bp.ArtifactID)
	overlay(&p.BootVersion, bp.BootVersion)
	overlay(&p.JavaVersion, bp.JavaVersion)
	overlay(&p.Packaging, bp.Packaging)
	overlay(&p.FrontendTemplate, bp.FrontendTemplate)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("blueprint %s: %w", path, err)
	}
	return &p, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
