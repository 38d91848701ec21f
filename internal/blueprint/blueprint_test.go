package blueprint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bootstitch-labs/bootstitch/internal/params"
)

func seedParams() params.Params {
	return params.Params{
		GroupID:          "com.example",
		ArtifactID:       "demo",
		BootVersion:      "3.4.1",
		JavaVersion:      "17",
		Packaging:        "jar",
		FrontendTemplate: "vue",
	}
}

func writeBlueprint(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing blueprint: %v", err)
	}
	return path
}

func TestLoadFullBlueprint(t *testing.T) {
	path := writeBlueprint(t, `group-id: org.acme
artifact-id: shop
boot-version: 3.5.0
java-version: "21"
packaging: war
frontend-template: react
`)

	p, err := Load(path, seedParams())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if p.GroupID != "org.acme" {
		t.Errorf("GroupID = %q, want org.acme", p.GroupID)
	}
	if p.ArtifactID != "shop" {
		t.Errorf("ArtifactID = %q, want shop", p.ArtifactID)
	}
	if p.BootVersion != "3.5.0" {
		t.Errorf("BootVersion = %q, want 3.5.0", p.BootVersion)
	}
	if p.JavaVersion != "21" {
		t.Errorf("JavaVersion = %q, want 21", p.JavaVersion)
	}
	if p.Packaging != "war" {
		t.Errorf("Packaging = %q, want war", p.Packaging)
	}
	if p.FrontendTemplate != "react" {
		t.Errorf("FrontendTemplate = %q, want react", p.FrontendTemplate)
	}
}

func TestLoadPartialBlueprintUsesSeed(t *testing.T) {
	path := writeBlueprint(t, `group-id: org.acme
artifact-id: shop
`)

	p, err := Load(path, seedParams())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.BootVersion != "3.4.1" {
		t.Errorf("BootVersion = %q, want seed default 3.4.1", p.BootVersion)
	}
	if p.Packaging != "jar" {
		t.Errorf("Packaging = %q, want seed default jar", p.Packaging)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing artifact-id",
			"group-id: org.acme\n",
			"invalid",
		},
		{
			"bad packaging enum",
			"group-id: org.acme\nartifact-id: shop\npackaging: ear\n",
			"/packaging",
		},
		{
			"unknown field",
			"group-id: org.acme\nartifact-id: shop\ncolour: blue\n",
			"invalid",
		},
		{
			"uppercase artifact id",
			"group-id: org.acme\nartifact-id: Shop\n",
			"/artifact-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBlueprint(t, tt.content)
			_, err := Load(path, seedParams())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), seedParams())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateAcceptsMinimal(t *testing.T) {
	result, err := Validate([]byte("group-id: com.example\nartifact-id: shop\n"))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("minimal blueprint should be valid, issues: %v", result.Issues)
	}
}
