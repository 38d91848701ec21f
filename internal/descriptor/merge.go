package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ParentArtifactID is the artifactId of the Spring Boot starter parent.
// The parent inheritance declaration must survive a merge unmodified.
const ParentArtifactID = "spring-boot-starter-parent"

// CopyFrontendID identifies the injected copy-resources execution. It is
// the uniqueness key that keeps repeated merges from duplicating the step.
const CopyFrontendID = "copy-frontend"

// staticOutputDir is where Spring Boot serves static content from.
const staticOutputDir = "${project.build.directory}/classes/static"

// ErrMalformed reports a descriptor that violates the structural
// assumptions Merge depends on. A merge that fails with ErrMalformed
// must abort the whole generation pipeline.
var ErrMalformed = errors.New("malformed build descriptor")

// Config holds the target values applied to a descriptor by Merge.
type Config struct {
	ArtifactID  string // project name; the descriptor identifier becomes "<ArtifactID>-backend"
	Packaging   string // "jar" or "war"
	JavaVersion string // e.g., "17"
	AssetDir    string // compiled frontend assets, relative to the backend directory
}

// Merge applies the full set of descriptor edits and returns the rewritten
// document. It never touches the filesystem; callers persist the result.
func Merge(doc []byte, cfg Config) ([]byte, error) {
	if cfg.Packaging != "jar" && cfg.Packaging != "war" {
		return nil, fmt.Errorf("unsupported packaging %q: must be jar or war", cfg.Packaging)
	}

	d := etree.NewDocument()
	if err := d.ReadFromBytes(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	project := d.Root()
	if project == nil || project.Tag != "project" {
		return nil, fmt.Errorf("%w: missing <project> root element", ErrMalformed)
	}

	if err := renameArtifact(project, cfg.ArtifactID); err != nil {
		return nil, err
	}
	setPackaging(project, cfg.Packaging)
	setJavaVersion(project, cfg.JavaVersion)
	upsertCopyStep(project, cfg.AssetDir)

	d.Indent(4)
	out, err := d.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing descriptor: %w", err)
	}
	return out, nil
}

// renameArtifact rewrites the first artifactId that is not the fixed
// starter-parent reference. A descriptor with no such element is broken
// and must not be silently passed through to the build tool.
func renameArtifact(project *etree.Element, artifactID string) error {
	for _, el := range project.FindElements(".//artifactId") {
		if strings.TrimSpace(el.Text()) == ParentArtifactID {
			continue
		}
		el.SetText(artifactID + "-backend")
		return nil
	}
	return fmt.Errorf("%w: no project artifactId element found", ErrMalformed)
}

// setPackaging overwrites the packaging element, or inserts one right
// after the modelVersion declaration when the skeleton omitted it.
func setPackaging(project *etree.Element, packaging string) {
	if el := project.SelectElement("packaging"); el != nil {
		el.SetText(packaging)
		return
	}

	el := etree.NewElement("packaging")
	el.SetText(packaging)
	if mv := project.SelectElement("modelVersion"); mv != nil {
		project.InsertChildAt(mv.Index()+1, el)
		return
	}
	project.AddChild(el)
}

// setJavaVersion overwrites the java.version property, creating the
// properties block immediately before the parent reference if needed.
func setJavaVersion(project *etree.Element, version string) {
	if props := project.SelectElement("properties"); props != nil {
		if jv := props.SelectElement("java.version"); jv != nil {
			jv.SetText(version)
			return
		}
		props.CreateElement("java.version").SetText(version)
		return
	}

	props := etree.NewElement("properties")
	props.CreateElement("java.version").SetText(version)
	if parent := project.SelectElement("parent"); parent != nil {
		project.InsertChildAt(parent.Index(), props)
		return
	}
	project.AddChild(props)
}

// upsertCopyStep injects the maven-resources-plugin execution that copies
// compiled frontend assets into the static classpath. The execution id is
// treated as a uniqueness key: if a plugin already carries it, that plugin
// is replaced in place rather than a duplicate being prepended.
func upsertCopyStep(project *etree.Element, assetDir string) {
	build := project.SelectElement("build")
	if build == nil {
		build = project.CreateElement("build")
	}
	plugins := build.SelectElement("plugins")
	if plugins == nil {
		plugins = build.CreateElement("plugins")
	}

	fresh := copyFrontendPlugin(assetDir)

	for _, id := range plugins.FindElements("./plugin/executions/execution/id") {
		if strings.TrimSpace(id.Text()) != CopyFrontendID {
			continue
		}
		existing := id.Parent().Parent().Parent() // id -> execution -> executions -> plugin
		idx := existing.Index()
		plugins.RemoveChild(existing)
		plugins.InsertChildAt(idx, fresh)
		return
	}

	plugins.InsertChildAt(0, fresh)
}

// copyFrontendPlugin builds the detached plugin element for the copy step.
func copyFrontendPlugin(assetDir string) *etree.Element {
	plugin := etree.NewElement("plugin")
	plugin.CreateElement("groupId").SetText("org.apache.maven.plugins")
	plugin.CreateElement("artifactId").SetText("maven-resources-plugin")

	execution := plugin.CreateElement("executions").CreateElement("execution")
	execution.CreateElement("id").SetText(CopyFrontendID)
	execution.CreateElement("phase").SetText("process-resources")
	execution.CreateElement("goals").CreateElement("goal").SetText("copy-resources")

	config := execution.CreateElement("configuration")
	config.CreateElement("outputDirectory").SetText(staticOutputDir)
	config.CreateElement("resources").CreateElement("resource").CreateElement("directory").SetText(assetDir)

	return plugin
}
