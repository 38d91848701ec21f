package descriptor

import (
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

const skeletonPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <parent>
        <groupId>org.springframework.boot</groupId>
        <artifactId>spring-boot-starter-parent</artifactId>
        <version>3.4.1</version>
        <relativePath/>
    </parent>
    <groupId>com.example</groupId>
    <artifactId>demo</artifactId>
    <version>0.0.1-SNAPSHOT</version>
    <name>demo</name>
</project>`

func testConfig() Config {
	return Config{
		ArtifactID:  "shop",
		Packaging:   "war",
		JavaVersion: "17",
		AssetDir:    "shop-frontend/dist",
	}
}

func TestMergeFullSkeleton(t *testing.T) {
	out := mustMerge(t, []byte(skeletonPom), testConfig())
	doc := parseDoc(t, out)
	project := doc.Root()

	if got := textOf(project, "artifactId"); got != "shop-backend" {
		t.Errorf("artifactId = %q, want %q", got, "shop-backend")
	}
	if got := textOf(project, "packaging"); got != "war" {
		t.Errorf("packaging = %q, want %q", got, "war")
	}
	if got := textOf(project, "properties/java.version"); got != "17" {
		t.Errorf("java.version = %q, want %q", got, "17")
	}

	dirs := project.FindElements("./build/plugins/plugin/executions/execution/configuration/resources/resource/directory")
	if len(dirs) != 1 {
		t.Fatalf("got %d resource directories, want 1", len(dirs))
	}
	if dirs[0].Text() != "shop-frontend/dist" {
		t.Errorf("resource directory = %q, want %q", dirs[0].Text(), "shop-frontend/dist")
	}
}

func TestMergeParentSurvives(t *testing.T) {
	out := mustMerge(t, []byte(skeletonPom), testConfig())
	doc := parseDoc(t, out)

	if got := textOf(doc.Root(), "parent/artifactId"); got != ParentArtifactID {
		t.Errorf("parent artifactId = %q, want %q", got, ParentArtifactID)
	}
	if got := textOf(doc.Root(), "parent/version"); got != "3.4.1" {
		t.Errorf("parent version = %q, want %q", got, "3.4.1")
	}
}

func TestMergePackaging(t *testing.T) {
	t.Run("inserted when absent", func(t *testing.T) {
		out := mustMerge(t, []byte(skeletonPom), testConfig())
		doc := parseDoc(t, out)

		els := doc.Root().FindElements("./packaging")
		if len(els) != 1 {
			t.Fatalf("got %d packaging elements, want 1", len(els))
		}
		// Positioned immediately after modelVersion.
		children := doc.Root().ChildElements()
		for i, el := range children {
			if el.Tag != "modelVersion" {
				continue
			}
			if i+1 >= len(children) {
				t.Fatal("modelVersion is the last element, want packaging after it")
			}
			if children[i+1].Tag != "packaging" {
				t.Errorf("element after modelVersion = %q, want packaging", children[i+1].Tag)
			}
		}
	})

	t.Run("overwritten when present", func(t *testing.T) {
		input := strings.Replace(skeletonPom,
			"<version>0.0.1-SNAPSHOT</version>",
			"<version>0.0.1-SNAPSHOT</version>\n    <packaging>jar</packaging>", 1)
		out := mustMerge(t, []byte(input), testConfig())
		doc := parseDoc(t, out)

		els := doc.Root().FindElements("./packaging")
		if len(els) != 1 {
			t.Fatalf("got %d packaging elements, want 1", len(els))
		}
		if els[0].Text() != "war" {
			t.Errorf("packaging = %q, want %q", els[0].Text(), "war")
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.Packaging = "ear"
		if _, err := Merge([]byte(skeletonPom), cfg); err == nil {
			t.Fatal("expected error for unsupported packaging")
		}
	})
}

func TestMergeJavaVersion(t *testing.T) {
	t.Run("properties block inserted before parent", func(t *testing.T) {
		out := mustMerge(t, []byte(skeletonPom), testConfig())
		doc := parseDoc(t, out)

		props := doc.Root().FindElements("./properties")
		if len(props) != 1 {
			t.Fatalf("got %d properties blocks, want 1", len(props))
		}
		parent := doc.Root().SelectElement("parent")
		if props[0].Index() >= parent.Index() {
			t.Errorf("properties at index %d, want before parent at %d", props[0].Index(), parent.Index())
		}
	})

	t.Run("existing property overwritten", func(t *testing.T) {
		input := strings.Replace(skeletonPom,
			"<name>demo</name>",
			"<name>demo</name>\n    <properties>\n        <java.version>11</java.version>\n        <maven.test.skip>true</maven.test.skip>\n    </properties>", 1)
		out := mustMerge(t, []byte(input), testConfig())
		doc := parseDoc(t, out)

		if got := textOf(doc.Root(), "properties/java.version"); got != "17" {
			t.Errorf("java.version = %q, want %q", got, "17")
		}
		// Unrelated properties survive.
		if got := textOf(doc.Root(), "properties/maven.test.skip"); got != "true" {
			t.Errorf("maven.test.skip = %q, want %q", got, "true")
		}
	})
}

func TestMergeIdempotent(t *testing.T) {
	cfg := testConfig()
	once := mustMerge(t, []byte(skeletonPom), cfg)
	twice := mustMerge(t, once, cfg)

	doc := parseDoc(t, twice)
	ids := doc.Root().FindElements("./build/plugins/plugin/executions/execution/id")
	count := 0
	for _, id := range ids {
		if id.Text() == CopyFrontendID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d copy-frontend executions after double merge, want 1", count)
	}

	if got := textOf(doc.Root(), "artifactId"); got != "shop-backend" {
		t.Errorf("artifactId = %q after double merge, want %q", got, "shop-backend")
	}
}

func TestMergeUpsertReplacesExistingStep(t *testing.T) {
	first := mustMerge(t, []byte(skeletonPom), testConfig())

	cfg := testConfig()
	cfg.AssetDir = "web/dist"
	second := mustMerge(t, first, cfg)

	doc := parseDoc(t, second)
	dirs := doc.Root().FindElements("./build/plugins/plugin/executions/execution/configuration/resources/resource/directory")
	if len(dirs) != 1 {
		t.Fatalf("got %d resource directories, want 1", len(dirs))
	}
	if dirs[0].Text() != "web/dist" {
		t.Errorf("resource directory = %q, want %q", dirs[0].Text(), "web/dist")
	}
}

func TestMergeExistingBuildBlock(t *testing.T) {
	input := strings.Replace(skeletonPom,
		"<name>demo</name>",
		`<name>demo</name>
    <build>
        <plugins>
            <plugin>
                <groupId>org.springframework.boot</groupId>
                <artifactId>spring-boot-maven-plugin</artifactId>
            </plugin>
        </plugins>
    </build>`, 1)

	out := mustMerge(t, []byte(input), testConfig())
	doc := parseDoc(t, out)

	plugins := doc.Root().FindElements("./build/plugins/plugin")
	if len(plugins) != 2 {
		t.Fatalf("got %d plugins, want 2", len(plugins))
	}
	// New step is inserted first; the existing plugin is untouched.
	if got := textOf(plugins[0], "artifactId"); got != "maven-resources-plugin" {
		t.Errorf("first plugin = %q, want maven-resources-plugin", got)
	}
	if got := textOf(plugins[1], "artifactId"); got != "spring-boot-maven-plugin" {
		t.Errorf("second plugin = %q, want spring-boot-maven-plugin", got)
	}
}

func TestMergeMalformed(t *testing.T) {
	t.Run("no artifactId element", func(t *testing.T) {
		input := `<?xml version="1.0"?>
<project>
    <modelVersion>4.0.0</modelVersion>
    <parent>
        <groupId>org.springframework.boot</groupId>
        <artifactId>spring-boot-starter-parent</artifactId>
    </parent>
</project>`
		_, err := Merge([]byte(input), testConfig())
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})

	t.Run("wrong root element", func(t *testing.T) {
		_, err := Merge([]byte("<settings><artifactId>x</artifactId></settings>"), testConfig())
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})

	t.Run("unparsable markup", func(t *testing.T) {
		_, err := Merge([]byte("<project><artifactId>demo</project>"), testConfig())
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("error = %v, want ErrMalformed", err)
		}
	})
}

// ─── Test Helpers ──────────────────────────────────────────────────

func mustMerge(t *testing.T, doc []byte, cfg Config) []byte {
	t.Helper()
	out, err := Merge(doc, cfg)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	return out
}

func parseDoc(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("parsing merged output: %v", err)
	}
	return doc
}

func textOf(el *etree.Element, path string) string {
	found := el.FindElement("./" + path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}
