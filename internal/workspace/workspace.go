// Package workspace writes the root-level files that tie the generated
// backend and frontend modules together (README, .gitignore), rendered
// from embedded templates.
package workspace

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var templatesFS embed.FS

// Data holds the template variables available to workspace templates.
type Data struct {
	ArtifactID   string // e.g., "shop"
	BackendName  string // e.g., "shop-backend"
	FrontendName string // e.g., "shop-frontend"
	GroupID      string
	BootVersion  string
	JavaVersion  string
	Packaging    string
	Year         int
}

// NewData derives a Data from the project identifiers.
func NewData(artifactID, groupID, bootVersion, javaVersion, packaging string) *Data {
	return &Data{
		ArtifactID:   artifactID,
		BackendName:  artifactID + "-backend",
		FrontendName: artifactID + "-frontend",
		GroupID:      groupID,
		BootVersion:  bootVersion,
		JavaVersion:  javaVersion,
		Packaging:    packaging,
		Year:         time.Now().Year(),
	}
}

// Result holds the outcome of writing workspace files.
type Result struct {
	RootDir string
	Files   []string
}

// Write renders every workspace template into rootDir. Template names use
// a leading "dot-" prefix to produce dotfiles (dot-gitignore → .gitignore).
func Write(rootDir string, data *Data) (*Result, error) {
	entries, err := fs.ReadDir(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("reading workspace templates: %w", err)
	}

	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("creating workspace root: %w", err)
	}

	result := &Result{RootDir: rootDir}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplBytes, err := fs.ReadFile(templatesFS, filepath.Join("templates", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		if rest, ok := strings.CutPrefix(outName, "dot-"); ok {
			outName = "." + rest
		}

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		outPath := filepath.Join(rootDir, outName)
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	return result, nil
}
